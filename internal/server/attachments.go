package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"redress/internal/storage"
	"redress/internal/utils"
	"redress/pkg/types"

	"github.com/alexedwards/flow"
)

// Extensions accepted for upload. Anything else is INVALID_FILE_TYPE.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

type uploadResponse struct {
	Message string             `json:"message"`
	Files   []types.Attachment `json:"files"`
}

type listFilesResponse struct {
	Files []types.Attachment `json:"files"`
}

func (s *Service) handleUpload(w http.ResponseWriter, r *http.Request) {
	// One oversized file must surface FILE_TOO_LARGE rather than a
	// framework-level failure, so the request cap leaves headroom above
	// the per-file limit.
	r.Body = http.MaxBytesReader(w, r.Body, int64(types.MaxUploadFiles)*types.MaxUploadFileSize+(1<<20))

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			s.respondError(w, http.StatusBadRequest, types.CodeFileTooLarge, "uploaded files exceed the size limit")
			return
		}
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "invalid multipart payload")
		return
	}
	defer r.MultipartForm.RemoveAll()

	grievanceID := r.FormValue("grievanceId")
	if grievanceID == "" {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "grievanceId is required")
		return
	}

	if _, err := s.grievances.Grievance(r.Context(), grievanceID); err != nil {
		if errors.Is(err, types.ErrGrievanceNotFound) {
			s.notFound(w, "Grievance not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch grievance for upload")
		s.internalServerError(w, err)
		return
	}

	headers := collectFileHeaders(r.MultipartForm, "files", "files[]")
	if len(headers) == 0 {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "no files uploaded")
		return
	}
	if len(headers) > types.MaxUploadFiles {
		s.respondError(w, http.StatusBadRequest, types.CodeTooManyFiles,
			fmt.Sprintf("at most %d files per upload", types.MaxUploadFiles))
		return
	}

	for _, header := range headers {
		if header.Size > types.MaxUploadFileSize {
			s.respondError(w, http.StatusBadRequest, types.CodeFileTooLarge,
				fmt.Sprintf("%s exceeds the %dMB limit", header.Filename, types.MaxUploadFileSize>>20))
			return
		}
		if !allowedExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
			s.respondError(w, http.StatusBadRequest, types.CodeInvalidFileType,
				fmt.Sprintf("file type not allowed: %s", header.Filename))
			return
		}
	}

	description := strings.TrimSpace(r.FormValue("description"))

	stored := make([]types.Attachment, 0, len(headers))
	for _, header := range headers {
		attachment, err := s.storeUploadedFile(r, grievanceID, description, header)
		if err != nil {
			s.logger.WithError(err).WithField("file_name", header.Filename).Error("failed to store uploaded file")
			s.internalServerError(w, err)
			return
		}
		stored = append(stored, *attachment)
	}

	s.respondJSON(w, http.StatusCreated, uploadResponse{
		Message: fmt.Sprintf("%d file(s) uploaded successfully", len(stored)),
		Files:   stored,
	})
}

func (s *Service) storeUploadedFile(r *http.Request, grievanceID, description string, header *multipart.FileHeader) (*types.Attachment, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded file %s: %w", header.Filename, err)
	}
	defer f.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.NewKey(header.Filename)
	if err := s.files.Save(r.Context(), key, f, contentType); err != nil {
		return nil, fmt.Errorf("save file %s: %w", header.Filename, err)
	}

	attachment := &types.Attachment{
		GrievanceID: grievanceID,
		FileName:    filepath.Base(header.Filename),
		ContentType: contentType,
		SizeBytes:   header.Size,
		StorageKey:  key,
	}
	if description != "" {
		attachment.Description = utils.StringPtr(description)
	}

	if err := s.attachments.CreateAttachment(r.Context(), attachment); err != nil {
		// Keep bytes and metadata consistent if the record fails.
		if delErr := s.files.Delete(r.Context(), key); delErr != nil {
			s.logger.WithError(delErr).WithField("storage_key", key).Warn("failed to clean up orphaned file")
		}
		return nil, fmt.Errorf("create attachment record: %w", err)
	}

	return attachment, nil
}

func (s *Service) handleListFiles(w http.ResponseWriter, r *http.Request) {
	grievanceID := flow.Param(r.Context(), "grievanceID")

	attachments, err := s.attachments.AttachmentsByGrievance(r.Context(), grievanceID)
	if err != nil {
		s.logger.WithError(err).Error("failed to list attachments")
		s.internalServerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, listFilesResponse{Files: attachments})
}

func (s *Service) handleDownload(w http.ResponseWriter, r *http.Request) {
	fileID := flow.Param(r.Context(), "fileID")

	attachment, err := s.attachments.Attachment(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, types.ErrAttachmentNotFound) {
			s.notFound(w, "File not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch attachment")
		s.internalServerError(w, err)
		return
	}

	contents, err := s.files.Open(r.Context(), attachment.StorageKey)
	if err != nil {
		if errors.Is(err, types.ErrAttachmentNotFound) {
			s.notFound(w, "File not found")
			return
		}
		s.logger.WithError(err).Error("failed to open stored file")
		s.internalServerError(w, err)
		return
	}
	defer contents.Close()

	w.Header().Set("Content-Type", attachment.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))

	if _, err := io.Copy(w, contents); err != nil {
		s.logger.WithError(err).Error("failed to stream file")
	}
}

func (s *Service) handleDeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := flow.Param(r.Context(), "fileID")

	attachment, err := s.attachments.Attachment(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, types.ErrAttachmentNotFound) {
			s.notFound(w, "File not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch attachment")
		s.internalServerError(w, err)
		return
	}

	if err := s.files.Delete(r.Context(), attachment.StorageKey); err != nil && !errors.Is(err, types.ErrAttachmentNotFound) {
		s.logger.WithError(err).Error("failed to delete stored file")
		s.internalServerError(w, err)
		return
	}

	if err := s.attachments.DeleteAttachment(r.Context(), fileID); err != nil {
		if errors.Is(err, types.ErrAttachmentNotFound) {
			s.notFound(w, "File not found")
			return
		}
		s.logger.WithError(err).Error("failed to delete attachment record")
		s.internalServerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": "File deleted successfully",
	})
}

// collectFileHeaders gathers uploaded files across the form keys
// clients are known to use.
func collectFileHeaders(form *multipart.Form, keys ...string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}

	var result []*multipart.FileHeader
	for _, key := range keys {
		if headers, ok := form.File[key]; ok {
			result = append(result, headers...)
		}
	}
	return result
}
