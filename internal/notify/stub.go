//go:build !linux

package notify

import "github.com/rs/zerolog"

// New returns a no-op notifier on non-Linux platforms.
func New(zerolog.Logger) Notifier {
	return stubNotifier{}
}
