// Package metrics records best-effort quote counters.
//
// Recording never affects a response: callers log a failed Record and move on.
package metrics

import (
	"context"
	"time"
)

// Outcome classifies a finished quote request.
type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeClientError   Outcome = "client_error"
	OutcomeInternalError Outcome = "internal_error"
)

// Event is one finished quote request. Language may be empty when the body
// could not be decoded.
type Event struct {
	Outcome  Outcome
	Language string
	At       time.Time
}

// Recorder stores quote events.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// Noop discards every event.
type Noop struct{}

// Record implements Recorder.
func (Noop) Record(context.Context, Event) error { return nil }
