package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Marker lines recognized in a headsetcontrol battery block. Anything else
// in the block is ignored.
const (
	markerAvailable = "Status: BATTERY_AVAILABLE"
	markerCharging  = "Status: BATTERY_CHARGING"
	markerLevel     = "Level: "
)

// Parse reads one per-device block of headsetcontrol output and returns the
// Snapshot it describes.
//
// Returns (nil, nil) when the block carries no actionable device: no name
// line, or a disconnected device with no battery level. Returns an error for
// a malformed battery value; the caller drops the device for this cycle and
// keeps its previous record.
func Parse(block string) (*Snapshot, error) {
	snap := Snapshot{Status: Disconnected}

	for _, line := range strings.Split(block, "\n") {
		switch {
		case strings.Contains(line, markerAvailable):
			snap.Status = Discharging
		case strings.Contains(line, markerCharging):
			snap.Status = Charging
		case strings.HasPrefix(line, " ") && strings.HasSuffix(line, "!"):
			snap.Name = strings.TrimSuffix(strings.TrimSpace(line), "!")
		case strings.Contains(line, markerLevel):
			lvl, err := parseLevelLine(line)
			if err != nil {
				return nil, err
			}
			snap.Battery = lvl
		}
	}

	if snap.Name == "" || (snap.Status == Disconnected && snap.Battery == nil) {
		return nil, nil
	}

	// Drop parenthetical model suffixes: "Foo Headset (wireless)" -> "Foo Headset".
	if i := strings.IndexByte(snap.Name, '('); i >= 0 {
		snap.Name = snap.Name[:i]
	}
	snap.Name = strings.TrimSpace(snap.Name)
	if snap.Name == "" {
		return nil, nil
	}

	return &snap, nil
}

func parseLevelLine(line string) (*int, error) {
	raw := strings.TrimSpace(line)
	raw = strings.Replace(raw, markerLevel, "", 1)
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "%")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("malformed battery level %q", strings.TrimSpace(line))
	}
	if n < 0 || n > 100 {
		return nil, fmt.Errorf("battery level %d out of range", n)
	}
	return &n, nil
}
