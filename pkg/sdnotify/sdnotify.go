// Package sdnotify wraps the systemd readiness and watchdog protocol.
// Every call is best-effort and a no-op when not running under systemd.
package sdnotify

import (
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
)

// Ready tells systemd the service finished starting up.
func Ready() {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyReady)
}

// Stopping tells systemd the service began shutting down.
func Stopping() {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
}

// Status publishes a one-line status string visible in `systemctl status`.
func Status(msg string) {
	_, _ = daemon.SdNotify(false, "STATUS="+msg)
}

// Watchdog sends one watchdog keepalive.
func Watchdog() {
	_, _ = daemon.SdNotify(false, daemon.SdNotifyWatchdog)
}

// WatchdogInterval returns the recommended keepalive interval (half the
// configured WatchdogSec), or 0 when no watchdog is configured.
func WatchdogInterval() time.Duration {
	d, err := daemon.SdWatchdogEnabled(false)
	if err != nil || d <= 0 {
		return 0
	}
	return d / 2
}
