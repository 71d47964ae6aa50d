package handoff

import (
	"context"
	"errors"
	"fmt"
)

// Sink receives completed orders.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, p Payload) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc struct {
	ID string
	Fn func(ctx context.Context, p Payload) error
}

// Name implements Sink.
func (f SinkFunc) Name() string { return f.ID }

// Deliver implements Sink.
func (f SinkFunc) Deliver(ctx context.Context, p Payload) error { return f.Fn(ctx, p) }

// Fanout delivers to every sink in order and joins their errors.
// A failing sink does not stop delivery to the rest.
type Fanout []Sink

// Name implements Sink.
func (f Fanout) Name() string { return "fanout" }

// Deliver implements Sink.
func (f Fanout) Deliver(ctx context.Context, p Payload) error {
	var errs []error
	for _, s := range f {
		if s == nil {
			continue
		}
		if err := s.Deliver(ctx, p); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Discard drops every payload. It is used when no operator channel is configured.
var Discard Sink = SinkFunc{ID: "discard", Fn: func(context.Context, Payload) error { return nil }}
