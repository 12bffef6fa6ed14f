// Package notify applies dispatch policy on top of the raw notify-send
// wrapper: icon validation, rate limiting and best-effort error handling.
package notify

import (
	"context"
	"errors"

	"golang.org/x/time/rate"

	"batwatch/pkg/logx"
)

// ErrRateLimited is returned when a notification is dropped by the limiter.
var ErrRateLimited = errors.New("notification rate limit exceeded")

// fallbackIcon replaces any icon name not on the allow-list.
const fallbackIcon = "dialog-information"

// allowedIcons are the icon names the desktop theme is known to resolve.
var allowedIcons = map[string]struct{}{
	"dialog-information": {},
	"battery-caution":    {},
	"battery-low":        {},
	"battery":            {},
}

// Notifier dispatches one desktop notification. Implementations are
// fire-and-forget; a returned error is advisory only.
type Notifier interface {
	Notify(ctx context.Context, title, body, icon string) error
}

// Sender is the process boundary, satisfied by *notifysend.Sender.
type Sender interface {
	Send(ctx context.Context, title, body, icon string) error
}

type Config struct {
	// RatePerSec caps how many notifications may be dispatched per second.
	// Over-limit notifications are dropped, never queued: a stale battery
	// notification is worthless by the time a queue would drain.
	RatePerSec int
}

type Service struct {
	sender  Sender
	log     logx.Logger
	limiter *rate.Limiter
}

func New(cfg Config, sender Sender, log logx.Logger) *Service {
	rps := cfg.RatePerSec
	if rps < 1 {
		rps = 1
	}
	return &Service{
		sender:  sender,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (s *Service) Notify(ctx context.Context, title, body, icon string) error {
	icon = sanitizeIcon(icon)

	if !s.limiter.Allow() {
		s.log.Warn("dropping notification",
			logx.String("title", title), logx.String("body", body), logx.Err(ErrRateLimited))
		return ErrRateLimited
	}

	if err := s.sender.Send(ctx, title, body, icon); err != nil {
		s.log.Warn("notification send failed",
			logx.String("title", title), logx.String("body", body), logx.Err(err))
		return err
	}
	s.log.Debug("notification sent",
		logx.String("title", title), logx.String("body", body), logx.String("icon", icon))
	return nil
}

func sanitizeIcon(icon string) string {
	if _, ok := allowedIcons[icon]; ok {
		return icon
	}
	return fallbackIcon
}
