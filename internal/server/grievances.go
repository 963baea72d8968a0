package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"redress/internal/utils"
	"redress/internal/validate"
	"redress/pkg/types"

	"github.com/alexedwards/flow"
)

type grievanceResponse struct {
	Message string           `json:"message"`
	Data    *types.Grievance `json:"data"`
}

func (s *Service) handleSubmitGrievance(w http.ResponseWriter, r *http.Request) {
	var in types.SubmitGrievance
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "invalid request body")
		return
	}

	if result := validate.Submission(in); !result.Valid() {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "grievance failed validation", result.Errors...)
		return
	}

	priority := in.Priority
	if priority == "" {
		priority = types.GrievancePriorityMedium
	}
	if !priority.Valid() {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "unknown priority: "+string(priority))
		return
	}

	grievance := &types.Grievance{
		ReferenceID: validate.ReferenceID(),
		UserID:      in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Category:    in.Category,
		Priority:    priority,
		Status:      types.GrievanceStatusSubmitted,
		Anonymous:   in.Anonymous,
	}

	if !in.Anonymous {
		grievance.SubmitterName = utils.StringPtr(strings.TrimSpace(in.SubmitterName))
		grievance.SubmitterEmail = utils.StringPtr(strings.TrimSpace(in.SubmitterEmail))
	}

	if err := s.grievances.CreateGrievance(r.Context(), grievance); err != nil {
		s.logger.WithError(err).Error("failed to create grievance")
		s.internalServerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, grievanceResponse{
		Message: "Grievance submitted successfully",
		Data:    grievance,
	})
}

func (s *Service) handleListGrievances(w http.ResponseWriter, r *http.Request) {
	var filter types.GrievanceFilter
	if err := decoder.Decode(&filter, r.URL.Query()); err != nil {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "invalid query parameters")
		return
	}

	grievances, err := s.grievances.Grievances(r.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list grievances")
		s.internalServerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grievances)
}

func (s *Service) handleGrievanceByID(w http.ResponseWriter, r *http.Request) {
	grievanceID := flow.Param(r.Context(), "id")

	grievance, err := s.grievances.Grievance(r.Context(), grievanceID)
	if err != nil {
		if errors.Is(err, types.ErrGrievanceNotFound) {
			s.notFound(w, "Grievance not found")
			return
		}
		s.logger.WithError(err).Error("failed to fetch grievance")
		s.internalServerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grievance)
}

func (s *Service) handleUpdateGrievanceStatus(w http.ResponseWriter, r *http.Request) {
	grievanceID := flow.Param(r.Context(), "id")

	var in struct {
		Status types.GrievanceStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "invalid request body")
		return
	}

	if !in.Status.Valid() {
		s.respondError(w, http.StatusBadRequest, types.CodeValidationFailed, "unknown status: "+string(in.Status))
		return
	}

	grievance, err := s.grievances.UpdateGrievanceStatus(r.Context(), grievanceID, in.Status)
	if err != nil {
		if errors.Is(err, types.ErrGrievanceNotFound) {
			s.notFound(w, "Grievance not found")
			return
		}
		s.logger.WithError(err).Error("failed to update grievance status")
		s.internalServerError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, grievanceResponse{
		Message: "Status updated to " + validate.StatusLabel(in.Status),
		Data:    grievance,
	})
}
