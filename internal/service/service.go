package service

import (
	"context"
	"time"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"
	"radiorecon/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string, invitedBy int) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// EventLog appends stamped entries to the log streams and lists mirrored ones.
type EventLog interface {
	Appender
	List(ctx context.Context, f LogFilter) ([]models.LogEntry, error)
}

// Scanner runs one Wi-Fi or BLE sweep against a radio.
type Scanner interface {
	ScanWifi(ctx context.Context, r radio.WifiRadio) ([]models.Target, error)
	ScanBLE(ctx context.Context, b radio.BLERadio, durationSeconds int) ([]models.BleSighting, error)
}

// Attempts tries a credential list against one target.
type Attempts interface {
	Attempt(ctx context.Context, r radio.WifiRadio, target models.Target, passwords []string) (models.AttemptOutcome, error)
}

// WlanInitializer brings the station interface up.
type WlanInitializer interface {
	Init(ctx context.Context, r radio.WifiRadio) error
}

// CycleRunner serializes scan-then-attack cycles over the shared radios.
// Stop Run via context cancellation in main() for graceful shutdown.
type CycleRunner interface {
	RunCycle(ctx context.Context) CycleReport
	Run(ctx context.Context, interval time.Duration)
	Status() RunnerStatus
}

// Monitoring exposes the runner and host snapshot.
type Monitoring interface {
	GetStatus(ctx context.Context) (Status, error)
}

type Service struct {
	EventLog
	Scanner
	Attempts
	WlanInitializer
	CycleRunner
	Monitoring
	Authorization
}

// Deps carries what NewService needs beyond the repositories.
type Deps struct {
	Clock   radio.Clock
	Wifi    radio.WifiRadio
	BLE     radio.BLERadio
	Backend string
	Policy  Policy
	Auth    AuthConfig
	Log     *logger.Logger
}

// NewService wires the repository layer and radios into concrete services.
func NewService(repos *repository.Repository, d Deps) *Service {
	var sinks []repository.LogSink
	if repos.Files != nil {
		sinks = append(sinks, repos.Files)
	}
	if repos.Entries != nil {
		sinks = append(sinks, repos.Entries)
	}
	events := NewEventLogService(d.Clock, repos.Entries, d.Log.Named("eventlog"), sinks...)
	scanner := NewScanService(events, NewTargetClassifier(d.Policy.Keywords), d.Log)
	attempts := NewAttemptService(events, d.Clock, d.Log)
	cycle := NewCycleService(d.Wifi, d.BLE, scanner, attempts, d.Policy, d.Log)

	return &Service{
		EventLog:        events,
		Scanner:         scanner,
		Attempts:        attempts,
		WlanInitializer: NewWlanInitService(events, d.Clock, d.Log),
		CycleRunner:     cycle,
		Monitoring:      NewMonitoringService(d.Backend, cycle, d.Log),
		Authorization:   NewAuthService(repos.Auth, d.Auth),
	}
}
