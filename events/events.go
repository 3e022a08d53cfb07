// events/events.go
package events

import (
	"context"
	"errors"
	"time"
)

// Event types emitted by the theme registry.
const (
	TypeActivated       = "theme.activated"
	TypeScanned         = "registry.scanned"
	TypeBasePathChanged = "registry.basepath_changed"
)

// Event describes a change to the theme registry.
type Event struct {
	// Type is one of the Type* constants.
	Type string `json:"type"`

	// Theme is the directory key of the theme involved, when the event
	// concerns a single theme.
	Theme string `json:"theme,omitempty"`

	// Paths is the view search path after the change took effect.
	Paths []string `json:"paths,omitempty"`

	// At is when the change happened.
	At time.Time `json:"at"`
}

// Publisher delivers registry events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop is a Publisher that discards all events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Multi fans every event out to all wrapped publishers. Publish and Close
// visit every publisher even when one fails and return the joined errors.
type Multi struct {
	pubs []Publisher
}

// NewMulti combines publishers into one. Nil entries are skipped.
func NewMulti(pubs ...Publisher) *Multi {
	m := &Multi{}
	for _, p := range pubs {
		if p != nil {
			m.pubs = append(m.pubs, p)
		}
	}
	return m
}

func (m *Multi) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range m.pubs {
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, p := range m.pubs {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
