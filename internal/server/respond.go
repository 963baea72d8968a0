package server

import (
	"encoding/json"
	"net/http"

	"redress/pkg/types"
)

func (s *Service) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.WithError(err).Error("failed to encode response body")
	}
}

func (s *Service) respondError(w http.ResponseWriter, status int, code types.ErrorCode, msg string, details ...string) {
	s.respondJSON(w, status, &types.APIError{
		Message: msg,
		Code:    code,
		Details: details,
	})
}

func (s *Service) notFound(w http.ResponseWriter, msg string) {
	s.respondError(w, http.StatusNotFound, types.CodeNotFound, msg)
}

func (s *Service) internalServerError(w http.ResponseWriter, err error) {
	s.respondError(w, http.StatusInternalServerError, types.CodeInternalError, err.Error())
}
