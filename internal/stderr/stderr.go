//go:build unix

// Package stderr captures output that C audio libraries (ALSA, faad2)
// write directly to file descriptor 2, bypassing os.Stderr, and forwards it
// to the log so it cannot corrupt the TUI.
package stderr

import (
	"bufio"
	"os"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

// Capture redirects fd 2 into a pipe while active.
type Capture struct {
	log  zerolog.Logger
	orig int
	r, w *os.File
	done chan struct{}
}

// Start begins capturing stderr. Call it before any C library is
// initialized. On error the program can continue without capture.
func Start(log zerolog.Logger) (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return nil, err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return nil, err
	}

	c := &Capture{
		log:  log.With().Str("component", "stderr").Logger(),
		orig: orig,
		r:    r,
		w:    w,
		done: make(chan struct{}),
	}
	go c.forward()
	return c, nil
}

func (c *Capture) forward() {
	defer close(c.done)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			c.log.Warn().Msg(line)
		}
	}
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = syscall.Write(c.orig, []byte(msg))
}

// Stop restores the original stderr and waits for pending lines to be
// logged.
func (c *Capture) Stop() {
	_ = syscall.Dup2(c.orig, int(os.Stderr.Fd()))
	_ = syscall.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
