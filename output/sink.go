// Package output writes generated cursor stylesheets.
package output

import (
	"context"
	"fmt"
	"io"
	"sync"

	"curgen/cursor"
	"curgen/source"
)

// Output is generated stylesheet along with what produced it.
type Output struct {
	Text        string
	AllElements bool
	Source      source.Location
	Size        string
	Color       string
}

// Sink is a destination for generated stylesheet.
type Sink interface {
	Write(ctx context.Context, out Output) error
}

// WriterSink writes stylesheet text to W, one stylesheet per call.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

func (s *WriterSink) Write(ctx context.Context, out Output) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(s.W, out.Text); err != nil {
		return fmt.Errorf("%w: %w", cursor.ErrIO, err)
	}
	return nil
}
