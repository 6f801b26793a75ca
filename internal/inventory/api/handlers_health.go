package api

import (
	"net/http"
	"time"
)

type healthStatus struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Peers     int64     `json:"peers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.peers.Count(r.Context())
	if err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, healthStatus{
			Status:    "degraded",
			Timestamp: time.Now().UTC(),
		})
		return
	}

	WriteJSON(w, http.StatusOK, healthStatus{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Peers:     count,
	})
}
