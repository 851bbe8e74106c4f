package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"
)

const wlanSettle = 500 * time.Millisecond

var errRadioNotActive = errors.New("radio not active")

// WlanInitService brings the Wi-Fi radio up in station mode with no association.
type WlanInitService struct {
	events Appender
	clock  radio.Clock
	log    *logger.Logger
}

func NewWlanInitService(events Appender, clock radio.Clock, log *logger.Logger) *WlanInitService {
	return &WlanInitService{events: events, clock: clock, log: log.Named("wlan")}
}

// Init activates r, drops any existing association and records the result
// as a WLAN_INIT entry.
func (s *WlanInitService) Init(ctx context.Context, r radio.WifiRadio) error {
	err := guard(func() error {
		if r == nil {
			return errRadioNotActive
		}
		if a, ok := r.(radio.Activator); ok {
			if err := a.Activate(true); err != nil {
				return err
			}
		}
		if !r.IsActive() {
			return errRadioNotActive
		}
		if r.IsConnected() {
			if err := r.Disconnect(); err != nil {
				return err
			}
			s.clock.Sleep(wlanSettle)
		}
		return nil
	})
	if err != nil {
		record(ctx, s.events, s.log, models.StreamGeneral, models.CategoryWlanInit, payloadWlanInitError(err.Error()))
		s.log.Errorw("wlan init failed", "err", err)
		return fmt.Errorf("wlan init: %w", asKind(err, models.ErrHardwareUnavailable))
	}
	record(ctx, s.events, s.log, models.StreamGeneral, models.CategoryWlanInit, payloadWlanInitSuccess)
	s.log.Infow("wlan initialized in station mode")
	return nil
}
