package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpLibraryScan,
			err:      nil,
			expected: "",
		},
		{
			name:     "library scan operation",
			op:       OpLibraryScan,
			err:      errors.New("permission denied"),
			expected: "Failed to scan library: permission denied",
		},
		{
			name:     "load operation",
			op:       OpLibraryLoad,
			err:      errors.New("database is locked"),
			expected: "Failed to load audio files: database is locked",
		},
		{
			name:     "playback operation",
			op:       OpPlaybackStart,
			err:      errors.New("no audio device"),
			expected: "Failed to start playback: no audio device",
		},
		{
			name:     "wrapped error keeps its chain text",
			op:       OpPlaybackNext,
			err:      errors.Join(errors.New("decode"), errors.New("bad frame")),
			expected: "Failed to skip to next track: decode\nbad frame",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.op, tt.err); got != tt.expected {
				t.Errorf("Format() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      nil,
			expected: "",
		},
		{
			name:     "with context",
			op:       OpPlaybackStart,
			context:  "song.mp3",
			err:      errors.New("unsupported format"),
			expected: "Failed to start playback 'song.mp3': unsupported format",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpLibraryWatch,
			context:  "",
			err:      errors.New("too many open files"),
			expected: "Failed to watch library: too many open files",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatWith(tt.op, tt.context, tt.err); got != tt.expected {
				t.Errorf("FormatWith() = %q, want %q", got, tt.expected)
			}
		})
	}
}
