// Package engine decides which desktop notifications a new device snapshot
// warrants, given the previously remembered record.
//
// Evaluate is pure: it produces notification intents and the record to
// commit, but performs no dispatch, no sleeping and no registry writes.
// That split keeps the state machine testable without spawning processes.
package engine

import (
	"fmt"
	"time"

	"batwatch/internal/device"
)

// Icon names passed to the notifier. The notifier validates them against its
// allow-list and falls back to a generic icon for anything unrecognized.
const (
	IconBattery = "battery"
	IconCaution = "battery-caution"
	IconLow     = "battery-low"
)

// Intent is one desktop notification the engine wants emitted.
type Intent struct {
	Title string
	Body  string
	Icon  string

	// Pause is slept before dispatching this intent. Used between the
	// connect notification and the first battery-level notification so the
	// two do not coalesce in the notification daemon.
	Pause time.Duration
}

// Result is the outcome of evaluating one snapshot.
type Result struct {
	// Intents to dispatch, in order.
	Intents []Intent
	// Record to upsert into the registry. Meaningless when Suppressed.
	Record device.Record
	// Suppressed means the cycle was skipped entirely for this device and
	// the registry must stay untouched.
	Suppressed bool
}

// Engine holds the decision knobs.
type Engine struct {
	// Threshold is the low-battery cutoff percentage.
	Threshold int
	// Pause is the anti-coalescing delay attached to paired intents.
	Pause time.Duration
}

// Evaluate runs the decision state machine for one device.
func (e Engine) Evaluate(old *device.Record, snap device.Snapshot) Result {
	if old == nil {
		return e.newDevice(snap)
	}

	// Suppression gate: the remembered last-notified level is compared with
	// the incoming snapshot's, which a fresh parse never carries. Any
	// remembered level therefore suppresses the whole cycle. Deliberate;
	// see the suppression-gate note in DESIGN.md before touching this.
	if old.LastNotified != nil {
		return Result{Record: *old, Suppressed: true}
	}

	rec := device.Record{
		Name:         snap.Name,
		Status:       snap.Status,
		Battery:      snap.Battery,
		LastNotified: old.LastNotified,
	}

	var intents []Intent
	intents = e.connectionChange(*old, snap, &rec, intents)
	intents = e.batteryChange(*old, snap, &rec, intents)

	return Result{Intents: intents, Record: rec}
}

// newDevice handles the first sighting of a device name.
func (e Engine) newDevice(snap device.Snapshot) Result {
	rec := device.Record{Name: snap.Name, Status: snap.Status, Battery: snap.Battery}

	intents := []Intent{{Title: snap.Name, Body: "New device connected", Icon: IconBattery}}
	if snap.Battery != nil {
		rec.LastNotified = snap.Battery
		intents = append(intents, e.levelIntent(snap, *snap.Battery))
	}
	return Result{Intents: intents, Record: rec}
}

// connectionChange covers connect/disconnect transitions.
func (e Engine) connectionChange(old device.Record, snap device.Snapshot, rec *device.Record, intents []Intent) []Intent {
	switch {
	case old.Status.Connected() && !snap.Status.Connected():
		rec.LastNotified = nil
		intents = append(intents, Intent{Title: snap.Name, Body: "Device disconnected", Icon: IconCaution})

	case !old.Status.Connected() && snap.Status.Connected():
		intents = append(intents, Intent{Title: snap.Name, Body: "New device connected", Icon: IconBattery})
		if snap.Battery != nil {
			rec.LastNotified = snap.Battery
			intents = append(intents, e.levelIntent(snap, *snap.Battery))
		}
	}
	return intents
}

// batteryChange covers genuine level movement while staying connected. Noisy
// re-reports (level unchanged, or moving against the charge direction) are
// ignored.
func (e Engine) batteryChange(old device.Record, snap device.Snapshot, rec *device.Record, intents []Intent) []Intent {
	if old.Battery == nil || snap.Battery == nil {
		return intents
	}
	oldLvl, newLvl := *old.Battery, *snap.Battery

	switch {
	case snap.Status == device.Discharging && newLvl < oldLvl:
		switch {
		case newLvl < e.Threshold:
			rec.LastNotified = snap.Battery
			intents = append(intents, Intent{
				Title: snap.Name,
				Body:  fmt.Sprintf("Battery level low: %d%%", newLvl),
				Icon:  IconLow,
			})
		case newLvl%5 == 0:
			// Throttle routine discharge chatter to 5%-steps.
			rec.LastNotified = snap.Battery
			intents = append(intents, Intent{
				Title: snap.Name,
				Body:  fmt.Sprintf("Battery level: %d%%", newLvl),
				Icon:  IconBattery,
			})
		}

	case snap.Status == device.Charging && newLvl > oldLvl:
		switch {
		case newLvl == 100:
			rec.LastNotified = snap.Battery
			intents = append(intents, Intent{
				Title: snap.Name,
				Body:  fmt.Sprintf("Battery level full: %d%%", newLvl),
				Icon:  IconBattery,
			})
		case newLvl%5 == 0:
			rec.LastNotified = snap.Battery
			intents = append(intents, Intent{
				Title: snap.Name,
				Body:  fmt.Sprintf("Charging %d%%", newLvl),
				Icon:  IconBattery,
			})
		}
	}
	return intents
}

// levelIntent is the battery-level notification paired with a connect
// notification; it carries the anti-coalescing pause.
func (e Engine) levelIntent(snap device.Snapshot, lvl int) Intent {
	return Intent{
		Title: snap.Name,
		Body:  fmt.Sprintf("Battery level: %d%%", lvl),
		Icon:  IconBattery,
		Pause: e.Pause,
	}
}
