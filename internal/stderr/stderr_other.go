//go:build !unix

package stderr

import (
	"os"

	"github.com/rs/zerolog"
)

// Capture is a no-op where audio back-ends do not write to fd 2.
type Capture struct{}

// Start is a no-op.
func Start(zerolog.Logger) (*Capture, error) { return &Capture{}, nil }

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) { _, _ = os.Stderr.WriteString(msg) }

// Stop is a no-op.
func (c *Capture) Stop() {}
