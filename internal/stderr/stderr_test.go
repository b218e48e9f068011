//go:build unix

package stderr

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCapture_ForwardsToLog(t *testing.T) {
	var out syncBuffer
	c, err := Start(zerolog.New(&out))
	if err != nil {
		t.Skipf("cannot redirect stderr: %v", err)
	}

	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	c.Stop()

	got := out.String()
	if !strings.Contains(got, "underrun occurred") {
		t.Errorf("log = %q, want captured line", got)
	}
	if !strings.Contains(got, `"level":"warn"`) || !strings.Contains(got, `"component":"stderr"`) {
		t.Errorf("log = %q, want warn entry tagged with component", got)
	}
	if n := strings.Count(got, "\n"); n != 1 {
		t.Errorf("logged %d lines, want 1 (blank lines dropped)", n)
	}
}
