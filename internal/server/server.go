// Package server exposes the calendar API over HTTP/JSON.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/lfmartins/calendario/internal/calendar"
	"github.com/lfmartins/calendario/internal/events"
	"github.com/lfmartins/calendario/internal/upload"
)

// CalendarServer holds the API's collaborators: the event repository, the
// upload handler, and the event publisher.
type CalendarServer struct {
	repo      *calendar.Repository
	uploads   *upload.Uploader
	publisher events.Publisher
}

// New returns a CalendarServer over the given repository, uploader and
// publisher.
func New(repo *calendar.Repository, uploads *upload.Uploader, publisher events.Publisher) *CalendarServer {
	return &CalendarServer{
		repo:      repo,
		uploads:   uploads,
		publisher: publisher,
	}
}

// publish emits an event best-effort; failures are logged, never surfaced
// to the request.
func (s *CalendarServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(data)
}

// writeError writes the {status:"error", message} shape.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": "error", "message": message})
}

// writeStorageError logs a store failure and returns a generic 500 that
// never exposes internal paths.
func writeStorageError(w http.ResponseWriter, op string, err error) {
	slog.Error("storage failure", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "erro interno")
}
