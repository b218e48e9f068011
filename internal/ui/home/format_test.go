package home

import "testing"

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{999, "0:00"},
		{1000, "0:01"},
		{59_999, "0:59"},
		{65_000, "1:05"},
		{600_000, "10:00"},
		{3_723_000, "62:03"},
		{-1, "--:--"},
		{-65_000, "--:--"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
