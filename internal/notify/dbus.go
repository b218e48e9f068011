//go:build linux

package notify

import (
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	appName = "JetAudio"
)

type dbusNotifier struct {
	obj dbus.BusObject
}

// New returns a D-Bus notifier, or a no-op one when the session bus is
// unavailable.
func New(log zerolog.Logger) Notifier {
	conn, err := dbus.SessionBus()
	if err != nil {
		log.Debug().Err(err).Msg("no session bus, notifications disabled")
		return stubNotifier{}
	}
	return &dbusNotifier{obj: conn.Object(dbusNotifyDest, dbusNotifyPath)}
}

func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant("jetaudio"),
		"category":      dbus.MakeVariant("x-jetaudio.playback"),
	}
	if notif.Resident {
		hints["resident"] = dbus.MakeVariant(true)
	}

	// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		appName,
		notif.ReplacesID,
		notif.Icon,
		notif.Title,
		notif.Body,
		[]string{},
		hints,
		notif.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (n *dbusNotifier) Close(id uint32) error {
	return n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id).Err
}

// ServerVersion calls GetServerInformation and returns its spec_version.
func (n *dbusNotifier) ServerVersion() (string, error) {
	var name, vendor, version, specVersion string
	err := n.obj.Call(dbusNotifyInterface+".GetServerInformation", 0).
		Store(&name, &vendor, &version, &specVersion)
	if err != nil {
		return "", err
	}
	return specVersion, nil
}
