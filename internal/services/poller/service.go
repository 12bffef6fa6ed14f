// Package poller runs the poll loop: fetch the battery report, parse it,
// evaluate each device against the registry, dispatch the resulting
// notifications and commit the updated records.
//
// The registry and the decision path are touched by this single goroutine
// only; no locking is needed anywhere on that path.
package poller

import (
	"context"
	"time"

	"batwatch/internal/device"
	"batwatch/internal/engine"
	"batwatch/internal/services/notify"
	"batwatch/pkg/headsetcontrol"
	"batwatch/pkg/logx"
)

// Source produces the raw battery report text.
type Source interface {
	Fetch(ctx context.Context) (string, error)
}

// SleepFunc blocks for d or until ctx is done. Injectable so tests do not
// actually wait out the inter-notification pause.
type SleepFunc func(ctx context.Context, d time.Duration)

type Config struct {
	// Interval is the poll cadence. The loop compensates for cycle
	// duration: it sleeps max(0, Interval - elapsed).
	Interval time.Duration
	// Debug dumps every registry record after each cycle.
	Debug bool
}

type Service struct {
	cfg      Config
	src      Source
	eng      engine.Engine
	notifier notify.Notifier
	reg      *device.Registry
	log      logx.Logger

	sleep SleepFunc
}

func New(cfg Config, src Source, eng engine.Engine, notifier notify.Notifier, log logx.Logger) *Service {
	return &Service{
		cfg:      cfg,
		src:      src,
		eng:      eng,
		notifier: notifier,
		reg:      device.NewRegistry(),
		log:      log,
		sleep:    waitCtx,
	}
}

// Registry exposes the device registry for inspection. Callers must not
// touch it while Run is active.
func (s *Service) Registry() *device.Registry { return s.reg }

// Run executes poll cycles until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	s.log.Info("poller started",
		logx.Duration("interval", s.cfg.Interval), logx.Bool("debug", s.cfg.Debug))

	for {
		start := time.Now()
		s.cycle(ctx)

		if err := ctx.Err(); err != nil {
			return err
		}
		if wait := s.cfg.Interval - time.Since(start); wait > 0 {
			s.sleep(ctx, wait)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
}

// cycle runs one full poll pass. Failures are per-cycle: the next tick is
// the retry.
func (s *Service) cycle(ctx context.Context) {
	raw, err := s.src.Fetch(ctx)
	if err != nil {
		// No data, no guessing. Keep the registry as-is and retry next tick.
		s.log.Error("status fetch failed", logx.Err(err))
		return
	}

	for _, block := range headsetcontrol.SplitBlocks(raw) {
		snap, err := device.Parse(block)
		if err != nil {
			s.log.Warn("dropping device for this cycle", logx.Err(err))
			continue
		}
		if snap == nil {
			continue
		}
		s.apply(ctx, *snap)
	}

	if s.cfg.Debug {
		for _, rec := range s.reg.Records() {
			s.log.Debug("registry", logx.String("record", rec.String()))
		}
	}
}

// apply evaluates one snapshot and executes the engine's verdict.
func (s *Service) apply(ctx context.Context, snap device.Snapshot) {
	var old *device.Record
	if rec, ok := s.reg.Lookup(snap.Name); ok {
		old = &rec
	}

	res := s.eng.Evaluate(old, snap)
	if res.Suppressed {
		s.log.Debug("cycle suppressed", logx.String("device", snap.Name))
		return
	}

	for _, it := range res.Intents {
		if it.Pause > 0 {
			s.sleep(ctx, it.Pause)
		}
		// Best-effort: the notify service already logged any failure.
		_ = s.notifier.Notify(ctx, it.Title, it.Body, it.Icon)
	}

	s.reg.Upsert(snap.Name, res.Record)
}

func waitCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
