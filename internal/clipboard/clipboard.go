// Package clipboard provides the write-only sinks a share link is copied to.
package clipboard

//go:generate mockgen -destination=mock/mock_writer.go -package=mockclipboard -source=clipboard.go

import (
	"context"
	"fmt"
	"io"
)

// Writer receives a share link
type Writer interface {
	Write(ctx context.Context, text string) error
}

// Stream writes each link on its own line to an io.Writer
type Stream struct {
	W io.Writer
}

// Write prints the text
func (s *Stream) Write(ctx context.Context, text string) error {
	if _, err := fmt.Fprintln(s.W, text); err != nil {
		return fmt.Errorf("failed to write share link: %w", err)
	}
	return nil
}
