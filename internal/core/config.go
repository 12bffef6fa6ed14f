package core

import (
	"flag"
	"fmt"
	"time"

	"batwatch/pkg/headsetcontrol"
	"batwatch/pkg/notifysend"
)

// Config is populated from command-line flags. There is deliberately no
// config file: the daemon has a handful of knobs and systemd unit files
// carry them fine.
type Config struct {
	// Interval is the poll cadence.
	Interval time.Duration
	// Threshold is the low-battery cutoff percentage.
	Threshold int
	// Debug dumps every registry record after each poll cycle.
	Debug bool

	LogLevel string
	// LogFile enables an additional JSON log sink when non-empty.
	LogFile string

	// Bin is the headsetcontrol binary.
	Bin string
	// NotifyBin is the notify-send binary.
	NotifyBin string
	// NotifyRate caps dispatched notifications per second.
	NotifyRate int
}

func DefaultConfig() Config {
	return Config{
		Interval:   5 * time.Second,
		Threshold:  10,
		Debug:      true,
		LogLevel:   "info",
		Bin:        headsetcontrol.DefaultBin,
		NotifyBin:  notifysend.DefaultBin,
		NotifyRate: 4,
	}
}

// RegisterFlags binds every knob to fs, using the receiver's current values
// as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.DurationVar(&c.Interval, "interval", c.Interval, "poll interval")
	fs.IntVar(&c.Threshold, "threshold", c.Threshold, "low battery threshold (percent)")
	fs.BoolVar(&c.Debug, "debug", c.Debug, "dump registry records after each cycle")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (trace|debug|info|warn|error)")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "append JSON logs to this file")
	fs.StringVar(&c.Bin, "headsetcontrol-bin", c.Bin, "headsetcontrol binary")
	fs.StringVar(&c.NotifyBin, "notify-send-bin", c.NotifyBin, "notify-send binary")
	fs.IntVar(&c.NotifyRate, "notify-rate", c.NotifyRate, "max notifications per second")
}

func (c Config) Validate() error {
	if c.Interval < 500*time.Millisecond {
		return fmt.Errorf("interval %s too short, minimum is 500ms", c.Interval)
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold %d out of range [0,100]", c.Threshold)
	}
	if c.NotifyRate < 1 {
		return fmt.Errorf("notify-rate must be >= 1")
	}
	if c.Bin == "" {
		return fmt.Errorf("headsetcontrol-bin must not be empty")
	}
	if c.NotifyBin == "" {
		return fmt.Errorf("notify-send-bin must not be empty")
	}
	return nil
}
