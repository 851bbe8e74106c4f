package service

import (
	"context"
	"fmt"
	"unicode/utf8"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"
)

const (
	bleScanWindowMillis = 30
	bleNoName           = "NoName"
)

// ScanService runs one Wi-Fi or BLE sweep, logs every sighting and
// returns Wi-Fi targets that matched a keyword.
type ScanService struct {
	events     Appender
	classifier *TargetClassifier
	log        *logger.Logger
}

func NewScanService(events Appender, classifier *TargetClassifier, log *logger.Logger) *ScanService {
	return &ScanService{events: events, classifier: classifier, log: log.Named("scan")}
}

// ScanWifi requires an active radio. Networks whose SSID is not valid UTF-8
// are skipped without a log entry.
func (s *ScanService) ScanWifi(ctx context.Context, r radio.WifiRadio) ([]models.Target, error) {
	if !isActive(r) {
		record(ctx, s.events, s.log, models.StreamGeneral, models.CategoryWlanInit, payloadWlanInitError("radio not active"))
		s.log.Errorw("wifi scan skipped", "err", "radio not active")
		return nil, fmt.Errorf("scan wifi: %w", models.ErrHardwareUnavailable)
	}

	var observed []models.WifiObservation
	err := guard(func() error {
		var err error
		observed, err = r.Scan()
		return err
	})
	if err != nil {
		s.log.Errorw("wifi scan failed", "err", err)
		return nil, fmt.Errorf("scan wifi: %w", asKind(err, models.ErrHardwareUnavailable))
	}

	targets := make([]models.Target, 0)
	skipped := 0
	for _, o := range observed {
		if !utf8.Valid(o.SSID) {
			skipped++
			continue
		}
		ssid := string(o.SSID)
		mac := radio.FormatMAC(o.BSSID[:])
		record(ctx, s.events, s.log, models.StreamGeneral, models.CategoryWifiScan, payloadWifiScan(ssid, mac, o.RSSI))

		kw, ok := s.classifier.Classify(ssid)
		if !ok {
			continue
		}
		targets = append(targets, models.Target{
			SSID:           ssid,
			MAC:            mac,
			RSSI:           o.RSSI,
			Channel:        o.Channel,
			MatchedKeyword: kw,
		})
		s.log.Infow("target found", "ssid", ssid, "mac", mac, "rssi", o.RSSI, "keyword", kw)
	}
	s.log.Infow("wifi scan finished", "observed", len(observed), "skipped", skipped, "targets", len(targets))
	return targets, nil
}

// ScanBLE powers the BLE radio, runs a blocking GAP scan of durationSeconds
// and powers it down again. Any radio fault yields an empty result.
func (s *ScanService) ScanBLE(ctx context.Context, b radio.BLERadio, durationSeconds int) ([]models.BleSighting, error) {
	sightings := make([]models.BleSighting, 0)
	if b == nil {
		s.log.Errorw("ble scan skipped", "err", "no ble radio")
		return sightings, fmt.Errorf("scan ble: %w", models.ErrHardwareUnavailable)
	}
	if durationSeconds <= 0 {
		durationSeconds = 1
	}

	if err := guard(func() error { return b.Activate(true) }); err != nil {
		s.log.Errorw("ble activate failed", "err", err)
		return sightings, fmt.Errorf("scan ble: %w", asKind(err, models.ErrHardwareUnavailable))
	}
	defer func() {
		if err := guard(func() error { return b.Activate(false) }); err != nil {
			s.log.Warnw("ble deactivate failed", "err", err)
		}
	}()

	s.log.Infow("ble scan started", "seconds", durationSeconds)
	var observed []models.BleObservation
	err := guard(func() error {
		var err error
		observed, err = b.GapScan(durationSeconds*1000, bleScanWindowMillis)
		return err
	})
	if err != nil {
		s.log.Errorw("ble scan failed", "err", err)
		return sightings, fmt.Errorf("scan ble: %w", asKind(err, models.ErrHardwareUnavailable))
	}
	if len(observed) == 0 {
		s.log.Infow("BLE: no targets found")
		return sightings, nil
	}

	for _, o := range observed {
		mac := radio.FormatMAC(o.Address[:])
		name := bleNoName
		if len(o.Name) > 0 && utf8.Valid(o.Name) {
			name = string(o.Name)
		}
		record(ctx, s.events, s.log, models.StreamGeneral, models.CategoryBLE, payloadBLE(mac, name, o.RSSI))
		sightings = append(sightings, models.BleSighting{Name: name, MAC: mac, RSSI: o.RSSI})
	}
	s.log.Infow("ble scan finished", "devices", len(sightings))
	return sightings, nil
}
