// Package display delivers rendered frames to the attached outputs: the
// terminal and the networked LED matrices.
package display

import (
	"context"
	"errors"

	"github.com/coastalhacks/tideclock/pkg/visualize"
)

// Sink receives frames to show.
type Sink interface {
	Name() string
	Render(ctx context.Context, f *visualize.Frame) error
	Close() error
}

// Fanout renders to every sink, collecting errors.
type Fanout []Sink

func (fo Fanout) Name() string { return "fanout" }

func (fo Fanout) Render(ctx context.Context, f *visualize.Frame) error {
	var errs []error
	for _, s := range fo {
		if err := s.Render(ctx, f); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (fo Fanout) Close() error {
	var errs []error
	for _, s := range fo {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
