package server

import (
	"encoding/json"
	"net/http"

	"github.com/lfmartins/calendario/internal/events"
)

// handleGetConfig handles GET /api/config.
func (s *CalendarServer) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.repo.Config(r.Context())
	if err != nil {
		writeStorageError(w, "get config", err)
		return
	}
	if cfg == nil {
		cfg = map[string]any{}
	}
	writeJSON(w, http.StatusOK, cfg)
}

// handleSetConfig handles POST /api/config. The body replaces the config
// object wholesale; there is no merge.
func (s *CalendarServer) handleSetConfig(w http.ResponseWriter, r *http.Request) {
	var cfg map[string]any
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	if err := s.repo.SetConfig(r.Context(), cfg); err != nil {
		writeStorageError(w, "set config", err)
		return
	}

	s.publish(r.Context(), events.TopicConfigUpdated, events.ConfigUpdated{Config: cfg})

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Configuração atualizada",
	})
}
