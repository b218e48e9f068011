//go:build linux

package notify

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestDBusNotifier_ServerVersion(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	v, err := New(zerolog.Nop()).ServerVersion()
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	if v == "" {
		t.Error("ServerVersion() returned empty version")
	}
}

func TestDBusNotifier_NotifyAndReplace(t *testing.T) {
	if os.Getenv("DBUS_SESSION_BUS_ADDRESS") == "" {
		t.Skip("no D-Bus session available")
	}

	n := New(zerolog.Nop())
	id, err := n.Notify(Notification{Title: "JetAudio test", Body: "first", Timeout: 1000, Urgency: UrgencyLow})
	if err != nil {
		t.Skipf("no notification server: %v", err)
	}
	id2, err := n.Notify(Notification{Title: "JetAudio test", Body: "second", Timeout: 1000, ReplacesID: id})
	if err != nil {
		t.Fatalf("replace Notify() error: %v", err)
	}
	if id2 != id {
		t.Errorf("replaced id = %d, want %d", id2, id)
	}
	_ = n.Close(id)
}
