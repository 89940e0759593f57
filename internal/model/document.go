// Package model defines the persisted calendar document and its event records.
package model

// Event is one calendar entry. Apart from the server-assigned "id" key the
// shape is entirely caller-defined, so it stays a plain JSON object.
type Event map[string]any

// ID returns the event's id, or 0 when absent or not numeric.
// Ids arrive as float64 after a JSON round trip, so both forms are accepted.
func (e Event) ID() int {
	switch v := e["id"].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// SetID overwrites the event's id, replacing any caller-supplied value.
func (e Event) SetID(id int) {
	e["id"] = id
}

// Document is the entire persisted state: one open-ended config object and
// the ordered event list. Order is insertion order as stored, nothing more.
type Document struct {
	Config  map[string]any `json:"config"`
	Eventos []Event        `json:"eventos"`
}

// NewDocument returns the default empty document.
func NewDocument() *Document {
	return &Document{
		Config:  map[string]any{},
		Eventos: []Event{},
	}
}

// Normalize ensures both top-level keys are present and non-nil so that the
// document always serializes as {"config":{},"eventos":[]} at minimum.
func (d *Document) Normalize() {
	if d.Config == nil {
		d.Config = map[string]any{}
	}
	if d.Eventos == nil {
		d.Eventos = []Event{}
	}
}

// NextEventID computes the id for the next created event: max of the current
// ids plus one, or 1 for an empty list. This is recomputed from the list on
// every call rather than kept as a counter, so ids freed by deletion are
// never refilled.
func (d *Document) NextEventID() int {
	max := 0
	for _, e := range d.Eventos {
		if id := e.ID(); id > max {
			max = id
		}
	}
	return max + 1
}
