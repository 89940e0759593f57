package events

import (
	"context"

	"github.com/lfmartins/calendario/internal/model"
)

// Event topic constants
const (
	TopicEventoCreated = "calendario.evento.created"
	TopicEventoUpdated = "calendario.evento.updated"
	TopicEventoDeleted = "calendario.evento.deleted"
	TopicConfigUpdated = "calendario.config.updated"
	TopicUploadStored  = "calendario.upload.stored"

	// TopicAll matches every calendario subject (NATS wildcard).
	TopicAll = "calendario.>"
)

// Event types

type EventoCreated struct {
	Evento model.Event `json:"evento"`
}

type EventoUpdated struct {
	Evento model.Event `json:"evento"`
}

type EventoDeleted struct {
	ID int `json:"id"`
}

type ConfigUpdated struct {
	Config map[string]any `json:"config"`
}

type UploadStored struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
