package server

import (
	"net/http"
	"time"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	UptimeSec int64     `json:"uptime_sec"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	var _ = r.Context()

	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Message:   "grievance service is running",
		Timestamp: time.Now(),
		UptimeSec: int64(time.Since(s.started).Seconds()),
	})
}
