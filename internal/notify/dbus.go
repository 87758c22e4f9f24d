//go:build linux

package notify

import (
	"path/filepath"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	busName   = "org.freedesktop.Notifications"
	busPath   = dbus.ObjectPath("/org/freedesktop/Notifications")
	busMethod = busName + ".Notify"
	busClose  = busName + ".CloseNotification"

	appName  = "vidctl"
	category = "x-vidctl.playback"
)

// dbusNotifier talks to the session notification daemon.
type dbusNotifier struct {
	obj dbus.BusObject
}

// New connects to the session bus. Without a session bus it returns a
// notifier that drops everything, so callers never need to special-case it.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nopNotifier{}, nil //nolint:nilerr // no session bus, notifications are optional
	}
	return &dbusNotifier{obj: conn.Object(busName, busPath)}, nil
}

// Notify implements
// Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout).
func (d *dbusNotifier) Notify(n Notification) (uint32, error) {
	icon, h := iconAndHints(n)
	call := d.obj.Call(busMethod, 0,
		appName, n.ReplacesID, icon, n.Title, n.Body, []string{}, h, n.Timeout)
	if call.Err != nil {
		return 0, call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *dbusNotifier) Close(id uint32) error {
	return d.obj.Call(busClose, 0, id).Err
}

// iconAndHints splits the icon into the app_icon argument and hints.
// Poster files travel as an image-path hint so daemons that ignore
// app_icon for images still show them. Low urgency notices are transient
// and stay out of the history.
func iconAndHints(n Notification) (string, map[string]dbus.Variant) {
	h := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(n.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant(category),
	}
	if n.Urgency == UrgencyLow {
		h["transient"] = dbus.MakeVariant(true)
	}

	icon := n.Icon
	if path, ok := strings.CutPrefix(icon, "file://"); ok || filepath.IsAbs(icon) {
		if !ok {
			path = icon
		}
		h["image-path"] = dbus.MakeVariant("file://" + path)
		icon = ""
	}
	return icon, h
}
