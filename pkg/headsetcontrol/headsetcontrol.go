// Package headsetcontrol shells out to the headsetcontrol CLI and carves its
// battery report into per-device blocks.
//
// This package deliberately does not parse device fields; it only owns the
// process boundary and the block separator. See internal/device for parsing.
package headsetcontrol

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBin is the command looked up on PATH when none is configured.
const DefaultBin = "headsetcontrol"

// blockSeparator introduces each device block in `headsetcontrol -b` output.
const blockSeparator = "Found"

// Client fetches the raw battery report.
type Client struct {
	// Bin is the command to invoke. Empty means DefaultBin.
	Bin string
}

// Fetch runs `headsetcontrol -b` and returns its stdout.
//
// A non-started or failed process is returned as an error; the caller decides
// whether that is fatal (the poll loop logs and retries next tick).
func (c *Client) Fetch(ctx context.Context) (string, error) {
	bin := c.Bin
	if bin == "" {
		bin = DefaultBin
	}
	out, err := exec.CommandContext(ctx, bin, "-b").Output()
	if err != nil {
		return "", fmt.Errorf("run %s -b: %w", bin, err)
	}
	return string(out), nil
}

// SplitBlocks splits raw report text into per-device chunks in discovery
// order. Blank chunks are dropped; any non-device preamble survives here and
// is rejected later by the parser's validity gate.
func SplitBlocks(raw string) []string {
	parts := strings.Split(raw, blockSeparator)
	blocks := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		blocks = append(blocks, p)
	}
	return blocks
}
