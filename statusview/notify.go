package statusview

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const notifySummary = "piclock status"

// notifier is the part of dbus.BusObject used to post notifications.
type notifier interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// NotifyDisplay shows the status as a desktop notification. Each update
// replaces the previous bubble.
type NotifyDisplay struct {
	object notifier
	id     uint32
}

// NewNotifyDisplay connects to the session bus.
func NewNotifyDisplay() (*NotifyDisplay, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to session bus: %s", err.Error())
	}

	object := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	return &NotifyDisplay{object: object}, nil
}

func (d *NotifyDisplay) SetText(text string) error {
	call := d.object.Call("org.freedesktop.Notifications.Notify", 0,
		"piclock", d.id, "", notifySummary, text, []string{}, map[string]dbus.Variant{}, int32(-1))

	if call.Err != nil {
		return call.Err
	}

	if len(call.Body) == 0 {
		return fmt.Errorf("NotifyDisplay: dbus gave an empty response")
	}

	id, ok := call.Body[0].(uint32)
	if !ok {
		return fmt.Errorf("NotifyDisplay: dbus returned a non-uint32 id")
	}
	d.id = id

	return nil
}
