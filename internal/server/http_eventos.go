package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/lfmartins/calendario/internal/calendar"
	"github.com/lfmartins/calendario/internal/events"
	"github.com/lfmartins/calendario/internal/model"
)

// handleGetData handles GET /api/data.
func (s *CalendarServer) handleGetData(w http.ResponseWriter, r *http.Request) {
	doc, err := s.repo.Document(r.Context())
	if err != nil {
		writeStorageError(w, "get data", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// handleListEventos handles GET /api/eventos.
func (s *CalendarServer) handleListEventos(w http.ResponseWriter, r *http.Request) {
	eventos, err := s.repo.ListEvents(r.Context())
	if err != nil {
		writeStorageError(w, "list eventos", err)
		return
	}
	// Ensure eventos is never null in JSON output.
	if eventos == nil {
		eventos = []model.Event{}
	}
	writeJSON(w, http.StatusOK, eventos)
}

// handleCreateEvento handles POST /api/eventos.
func (s *CalendarServer) handleCreateEvento(w http.ResponseWriter, r *http.Request) {
	var fields model.Event
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	evento, err := s.repo.CreateEvent(r.Context(), fields)
	if err != nil {
		writeStorageError(w, "create evento", err)
		return
	}

	s.publish(r.Context(), events.TopicEventoCreated, events.EventoCreated{Evento: evento})

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"evento": evento,
	})
}

// handleUpdateEvento handles PUT /api/eventos/{id}.
func (s *CalendarServer) handleUpdateEvento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	var fields model.Event
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeError(w, http.StatusBadRequest, "corpo JSON inválido")
		return
	}

	evento, err := s.repo.UpdateEvent(r.Context(), id, fields)
	if errors.Is(err, calendar.ErrEventNotFound) {
		writeError(w, http.StatusNotFound, "Evento não encontrado")
		return
	}
	if err != nil {
		writeStorageError(w, "update evento", err)
		return
	}

	s.publish(r.Context(), events.TopicEventoUpdated, events.EventoUpdated{Evento: evento})

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"evento": evento,
	})
}

// handleDeleteEvento handles DELETE /api/eventos/{id}.
// Deleting a non-existent id still succeeds.
func (s *CalendarServer) handleDeleteEvento(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id inválido")
		return
	}

	if err := s.repo.DeleteEvent(r.Context(), id); err != nil {
		writeStorageError(w, "delete evento", err)
		return
	}

	s.publish(r.Context(), events.TopicEventoDeleted, events.EventoDeleted{ID: id})

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Evento deletado",
	})
}
