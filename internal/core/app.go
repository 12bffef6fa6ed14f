// Package core wires configuration, logging and services into the daemon.
package core

import (
	"context"
	"time"

	"batwatch/internal/engine"
	"batwatch/internal/services/notify"
	"batwatch/internal/services/poller"
	"batwatch/pkg/headsetcontrol"
	"batwatch/pkg/logx"
	"batwatch/pkg/notifysend"
	"batwatch/pkg/sdnotify"
)

// pairPause separates a connect notification from the battery-level
// notification that follows it, so notification daemons that coalesce
// rapid-fire messages from one sender show both.
const pairPause = time.Second

type App struct {
	cfg Config

	logs *logx.Service
	log  logx.Logger

	poll *poller.Service
	sup  *Supervisor
}

func NewApp(cfg Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logSvc, log := logx.New(logx.Config{
		Level:   cfg.LogLevel,
		Console: true,
		File: logx.FileConfig{
			Enabled: cfg.LogFile != "",
			Path:    cfg.LogFile,
		},
	})
	log = log.With(logx.String("comp", "app"))

	notifSvc := notify.New(
		notify.Config{RatePerSec: cfg.NotifyRate},
		&notifysend.Sender{Bin: cfg.NotifyBin},
		log.With(logx.String("comp", "notify")),
	)

	eng := engine.Engine{Threshold: cfg.Threshold, Pause: pairPause}
	src := &headsetcontrol.Client{Bin: cfg.Bin}

	poll := poller.New(
		poller.Config{Interval: cfg.Interval, Debug: cfg.Debug},
		src, eng, notifSvc,
		log.With(logx.String("comp", "poller")),
	)

	return &App{
		cfg:  cfg,
		logs: logSvc,
		log:  log,
		poll: poll,
	}, nil
}

// Done is closed when the app supervisor context is canceled (fatal error or Stop()).
func (a *App) Done() <-chan struct{} {
	if a.sup == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return a.sup.Context().Done()
}

// Err returns the first fatal error observed by the supervisor (if any).
func (a *App) Err() error {
	if a.sup == nil {
		return nil
	}
	return a.sup.Err()
}

func (a *App) Start(ctx context.Context) error {
	a.sup = NewSupervisor(ctx, WithLogger(a.log), WithCancelOnError(true))

	a.sup.Go("poller", a.poll.Run)

	if iv := sdnotify.WatchdogInterval(); iv > 0 {
		a.sup.Go0("watchdog", func(ctx context.Context) {
			t := time.NewTicker(iv)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					sdnotify.Watchdog()
				}
			}
		})
	}

	sdnotify.Ready()
	sdnotify.Status("watching headset battery")
	a.log.Info("started",
		logx.Duration("interval", a.cfg.Interval),
		logx.Int("threshold", a.cfg.Threshold),
		logx.Bool("debug", a.cfg.Debug))
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	sdnotify.Stopping()

	var err error
	if a.sup != nil {
		err = a.sup.Stop(ctx)
	}
	a.log.Info("stopped", logx.Err(err))
	_ = a.logs.Close()
	return err
}
