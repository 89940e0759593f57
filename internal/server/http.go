package server

import (
	"net/http"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
func (s *CalendarServer) NewHTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/data", s.handleGetData)
	mux.HandleFunc("GET /api/config", s.handleGetConfig)
	mux.HandleFunc("POST /api/config", s.handleSetConfig)
	mux.HandleFunc("GET /api/eventos", s.handleListEventos)
	mux.HandleFunc("POST /api/eventos", s.handleCreateEvento)
	mux.HandleFunc("PUT /api/eventos/{id}", s.handleUpdateEvento)
	mux.HandleFunc("DELETE /api/eventos/{id}", s.handleDeleteEvento)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /uploads/{filename}", s.handleServeUpload)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return RequestLogger(mux)
}

// handleHealth handles GET /api/health.
func (s *CalendarServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
