// Package notifysend is a thin wrapper around the notify-send CLI.
//
// Dispatch is fire-and-forget: the desktop notification daemon gives no
// delivery confirmation, so callers should treat errors as advisory.
package notifysend

import (
	"context"
	"os/exec"
)

// DefaultBin is the command looked up on PATH when none is configured.
const DefaultBin = "notify-send"

// Sender invokes notify-send.
type Sender struct {
	// Bin is the command to invoke. Empty means DefaultBin.
	Bin string
}

// Send dispatches one desktop notification. Stdout is discarded; the command
// normally prints nothing, but some wrappers echo the notification id.
func (s *Sender) Send(ctx context.Context, title, body, icon string) error {
	bin := s.Bin
	if bin == "" {
		bin = DefaultBin
	}
	cmd := exec.CommandContext(ctx, bin, title, body, "--icon="+icon)
	cmd.Stdout = nil
	return cmd.Run()
}
