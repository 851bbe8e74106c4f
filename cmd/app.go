package main

import (
	"database/sql"
	"fmt"

	"radiorecon/internal/config"
	"radiorecon/internal/logger"
	"radiorecon/internal/radio"
	"radiorecon/internal/repository"
	"radiorecon/internal/repository/db"
	"radiorecon/internal/service"

	"go.uber.org/multierr"
)

// app is the wired process: storage, radios and services.
type app struct {
	db         *sql.DB
	services   *service.Service
	wifi       radio.WifiRadio
	ble        radio.BLERadio
	closeRadio func() error
}

func newApp(cfg config.Config, log *logger.Logger) (*app, error) {
	database, err := db.InitDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("init sqlite: %w", err)
	}

	clock := radio.NewSystemClock()
	wifi, ble, closeRadio, err := newRadios(cfg, clock, log)
	if err != nil {
		_ = database.Close()
		return nil, err
	}

	repos := repository.NewRepository(database, repository.NewFileLog(cfg.GeneralLog, cfg.CredentialLog))
	services := service.NewService(repos, service.Deps{
		Clock:   clock,
		Wifi:    wifi,
		BLE:     ble,
		Backend: cfg.RadioBackend,
		Policy: service.Policy{
			Keywords:           cfg.Keywords,
			Passwords:          cfg.Passwords,
			BLEDurationSeconds: cfg.BLESeconds,
		},
		Auth: service.AuthConfig{SigningKey: cfg.SigningKey, TokenTTL: cfg.TokenTTL},
		Log:  log,
	})

	return &app{db: database, services: services, wifi: wifi, ble: ble, closeRadio: closeRadio}, nil
}

func (a *app) Close() error {
	return multierr.Combine(a.closeRadio(), a.db.Close())
}

// newRadios builds the Wi-Fi (and, where available, BLE) backend.
func newRadios(cfg config.Config, clock radio.Clock, log *logger.Logger) (radio.WifiRadio, radio.BLERadio, func() error, error) {
	noop := func() error { return nil }
	switch cfg.RadioBackend {
	case config.BackendLinux:
		w, err := radio.NewLinuxWifi(cfg.RadioInterface)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open %s: %w", cfg.RadioInterface, err)
		}
		log.Infow("radio backend ready", "backend", cfg.RadioBackend, "iface", cfg.RadioInterface)
		return w, nil, w.Close, nil
	case config.BackendCapture:
		log.Infow("radio backend ready", "backend", cfg.RadioBackend, "file", cfg.CaptureFile)
		return radio.NewCaptureWifi(cfg.CaptureFile), nil, noop, nil
	default:
		w := radio.NewSimWifi(clock, radio.DemoNetworks()...)
		w.Jitter = 3
		log.Infow("radio backend ready", "backend", config.BackendSim)
		return w, radio.NewSimBLE(radio.DemoPeripherals()...), noop, nil
	}
}
