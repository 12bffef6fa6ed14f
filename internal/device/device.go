// Package device models observed headset state: the per-cycle Snapshot, the
// durable Record, and the Registry that remembers one Record per device name.
package device

import "fmt"

// BatteryStatus is the reported battery/connection state of a device.
type BatteryStatus int

const (
	Disconnected BatteryStatus = iota
	Discharging
	Charging
)

func (s BatteryStatus) String() string {
	switch s {
	case Charging:
		return "charging"
	case Discharging:
		return "discharging"
	default:
		return "disconnected"
	}
}

// Connected reports whether the status represents a connected device.
func (s BatteryStatus) Connected() bool { return s != Disconnected }

// Snapshot is a freshly parsed, not-yet-committed observation of one device
// for a single poll cycle.
type Snapshot struct {
	// Name is the device name with any parenthetical model suffix stripped.
	// It is the registry key.
	Name   string
	Status BatteryStatus
	// Battery is the reported percentage, nil when the device reports no
	// level field.
	Battery *int
}

// Record is the registry's remembered state for one device. It lives for the
// whole process; a disconnected device keeps its Record so a later
// reconnection is observable as a transition.
type Record struct {
	Name    string
	Status  BatteryStatus
	Battery *int

	// LastNotified is the battery percentage at the most recent
	// notification, nil after a disconnect or before any notification.
	LastNotified *int
}

func (r Record) String() string {
	return fmt.Sprintf("device=%s status=%s battery=%s last_notified=%s",
		r.Name, r.Status, fmtLevel(r.Battery), fmtLevel(r.LastNotified))
}

func fmtLevel(p *int) string {
	if p == nil {
		return "none"
	}
	return fmt.Sprintf("%d%%", *p)
}

// Level is a convenience constructor for optional battery percentages.
func Level(n int) *int { return &n }
