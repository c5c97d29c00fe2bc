package server

import (
	"encoding/json"
	"net/http"
)

// statusResponse is the fixed response shape for status and rejection
// messages: { "status": bool, "message": string }
type statusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeStatus(w http.ResponseWriter, statusCode int, status bool, message string) {
	s.writeJSON(w, statusCode, statusResponse{Status: status, Message: message})
}
