// Package notify posts desktop notifications over the freedesktop D-Bus
// interface and keeps a persistent "now playing" notification in sync with
// the media session.
package notify

import "errors"

// ErrUnavailable is returned by ServerVersion when no notification server
// can be reached.
var ErrUnavailable = errors.New("notify: notification server unavailable")

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string // summary
	Body       string
	Icon       string // image path or icon name
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
	Resident   bool // stays after being clicked, used for the playback notification
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error when notifications are unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
	// ServerVersion returns the notification spec version implemented by
	// the server, e.g. "1.2".
	ServerVersion() (string, error)
}

// stubNotifier is used when D-Bus is unavailable.
type stubNotifier struct{}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (stubNotifier) Close(uint32) error                  { return nil }
func (stubNotifier) ServerVersion() (string, error)      { return "", ErrUnavailable }

// Disabled returns a Notifier that drops every notification.
func Disabled() Notifier { return stubNotifier{} }
