package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"redress/internal/storage"
	"redress/internal/store"
	"redress/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	config := &types.Config{
		ServerPort:      5001,
		ReadTimeoutSec:  10,
		WriteTimeoutSec: 15,
		AllowedOrigins:  []string{"http://localhost:3000"},
	}

	return New(config, logger, store.NewMemoryGrievanceStore(), store.NewMemoryAttachmentStore(), files)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func submitValidGrievance(t *testing.T, h http.Handler) *types.Grievance {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/grievances", types.SubmitGrievance{
		Title:       "Broken AC in Room 204",
		Description: "The air conditioning unit in hostel room 204 has been non-functional for five days.",
		Category:    "hostel",
		Anonymous:   true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	envelope := decodeBody[grievanceResponse](t, rec)
	require.NotNil(t, envelope.Data)
	return envelope.Data
}

func TestHealth(t *testing.T) {
	h := newTestService(t).Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[healthResponse](t, rec)
	assert.Equal(t, "ok", body.Status)
	assert.NotEmpty(t, body.Message)
	assert.False(t, body.Timestamp.IsZero())
}

func TestSubmitAndFetchRoundTrip(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)
	assert.NotEmpty(t, created.ID)
	assert.True(t, strings.HasPrefix(created.ReferenceID, "GRV-"))
	assert.Equal(t, types.GrievanceStatusSubmitted, created.Status)
	assert.Equal(t, types.GrievancePriorityMedium, created.Priority)

	rec := doJSON(t, h, http.MethodGet, "/api/grievances/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	fetched := decodeBody[types.Grievance](t, rec)
	assert.Equal(t, created.Title, fetched.Title)
	assert.Equal(t, created.Description, fetched.Description)
	assert.Equal(t, created.Category, fetched.Category)
	assert.Equal(t, types.GrievanceStatusSubmitted, fetched.Status)
}

func TestSubmitValidationFailure(t *testing.T) {
	h := newTestService(t).Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/grievances", types.SubmitGrievance{
		Title:       "AC",
		Description: "too short",
		Category:    "",
		Anonymous:   true,
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeValidationFailed, apiErr.Code)
	assert.NotEmpty(t, apiErr.Message)
	assert.Len(t, apiErr.Details, 3)
}

func TestListGrievancesWithFilter(t *testing.T) {
	h := newTestService(t).Handler()

	first := submitValidGrievance(t, h)

	rec := doJSON(t, h, http.MethodPost, "/api/grievances", types.SubmitGrievance{
		Title:       "Library roof leaking",
		Description: "Water drips onto the reading desks whenever it rains for more than an hour.",
		Category:    "infrastructure",
		Anonymous:   true,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/grievances", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decodeBody[[]*types.Grievance](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID)

	rec = doJSON(t, h, http.MethodGet, "/api/grievances?category=hostel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	filtered := decodeBody[[]*types.Grievance](t, rec)
	require.Len(t, filtered, 1)
	assert.Equal(t, first.ID, filtered[0].ID)
}

func TestUpdateStatus(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	time.Sleep(5 * time.Millisecond)

	rec := doJSON(t, h, http.MethodPatch, "/api/grievances/"+created.ID+"/status",
		map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusOK, rec.Code)

	envelope := decodeBody[grievanceResponse](t, rec)
	require.NotNil(t, envelope.Data)
	assert.Equal(t, types.GrievanceStatusResolved, envelope.Data.Status)
	assert.True(t, envelope.Data.UpdatedAt.After(created.UpdatedAt))
	assert.Contains(t, envelope.Message, "Resolved")
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	rec := doJSON(t, h, http.MethodPut, "/api/grievances/"+created.ID+"/status",
		map[string]string{"status": "escalated-to-the-moon"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeValidationFailed, apiErr.Code)
}

func TestGrievanceNotFound(t *testing.T) {
	h := newTestService(t).Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/grievances/missing", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeNotFound, apiErr.Code)
	assert.NotEmpty(t, apiErr.Message)

	rec = doJSON(t, h, http.MethodPatch, "/api/grievances/missing/status",
		map[string]string{"status": "resolved"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartUpload(t *testing.T, grievanceID, description string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	require.NoError(t, mw.WriteField("grievanceId", grievanceID))
	if description != "" {
		require.NoError(t, mw.WriteField("description", description))
	}

	for name, contents := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(contents)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func doUpload(t *testing.T, h http.Handler, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUploadListDownloadDelete(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	body, contentType := multipartUpload(t, created.ID, "supporting note", map[string][]byte{
		"note.txt": []byte("small text attachment"),
	})
	rec := doUpload(t, h, body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	uploaded := decodeBody[uploadResponse](t, rec)
	require.Len(t, uploaded.Files, 1)
	fileID := uploaded.Files[0].ID
	assert.NotEmpty(t, fileID)
	assert.Equal(t, "note.txt", uploaded.Files[0].FileName)
	assert.Equal(t, int64(len("small text attachment")), uploaded.Files[0].SizeBytes)
	require.NotNil(t, uploaded.Files[0].Description)
	assert.Equal(t, "supporting note", *uploaded.Files[0].Description)

	rec = doJSON(t, h, http.MethodGet, "/api/files/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decodeBody[listFilesResponse](t, rec)
	require.Len(t, listed.Files, 1)

	rec = doJSON(t, h, http.MethodGet, "/api/download/"+fileID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "small text attachment", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "note.txt")

	rec = doJSON(t, h, http.MethodDelete, "/api/files/"+fileID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/api/download/"+fileID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodDelete, "/api/files/"+fileID, nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUploadTooManyFiles(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	files := make(map[string][]byte)
	for i := 0; i < types.MaxUploadFiles+1; i++ {
		files[fmt.Sprintf("file-%d.txt", i)] = []byte("contents")
	}

	body, contentType := multipartUpload(t, created.ID, "", files)
	rec := doUpload(t, h, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeTooManyFiles, apiErr.Code)
}

func TestUploadFileTooLarge(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	body, contentType := multipartUpload(t, created.ID, "", map[string][]byte{
		"huge.txt": bytes.Repeat([]byte("x"), types.MaxUploadFileSize+1),
	})
	rec := doUpload(t, h, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeFileTooLarge, apiErr.Code)
}

func TestUploadInvalidFileType(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	body, contentType := multipartUpload(t, created.ID, "", map[string][]byte{
		"malware.exe": []byte("MZ"),
	})
	rec := doUpload(t, h, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeInvalidFileType, apiErr.Code)
}

func TestUploadUnknownGrievance(t *testing.T) {
	h := newTestService(t).Handler()

	body, contentType := multipartUpload(t, "missing", "", map[string][]byte{
		"note.txt": []byte("contents"),
	})
	rec := doUpload(t, h, body, contentType)

	require.Equal(t, http.StatusNotFound, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeNotFound, apiErr.Code)
}

func TestUploadRequiresFiles(t *testing.T) {
	h := newTestService(t).Handler()

	created := submitValidGrievance(t, h)

	body, contentType := multipartUpload(t, created.ID, "", nil)
	rec := doUpload(t, h, body, contentType)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	apiErr := decodeBody[types.APIError](t, rec)
	assert.Equal(t, types.CodeValidationFailed, apiErr.Code)
}
