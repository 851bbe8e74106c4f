package service

import (
	"context"
	"sync"
	"time"

	"radiorecon/internal/logger"
	"radiorecon/internal/models"
	"radiorecon/internal/radio"

	"github.com/google/uuid"
)

// CycleReport summarizes one scan-then-attack pass.
type CycleReport struct {
	ID         string                  `json:"id"`
	StartedAt  time.Time               `json:"started_at"`
	FinishedAt time.Time               `json:"finished_at"`
	Targets    []models.Target         `json:"targets"`
	Outcomes   []models.AttemptOutcome `json:"outcomes"`
	BLE        []models.BleSighting    `json:"ble"`
	Errors     []string                `json:"errors,omitempty"`
}

// RunnerStatus is the externally visible state of the cycle runner.
type RunnerStatus struct {
	Looping bool         `json:"looping"`
	Busy    bool         `json:"busy"`
	Cycles  int          `json:"cycles"`
	Last    *CycleReport `json:"last,omitempty"`
}

// CycleService owns the shared radios and serializes every use of them:
// a cycle scans Wi-Fi, attempts each target, then sweeps BLE.
type CycleService struct {
	run sync.Mutex

	wifi     radio.WifiRadio
	ble      radio.BLERadio
	scanner  Scanner
	attempts Attempts
	policy   Policy
	log      *logger.Logger
	now      func() time.Time

	mu     sync.RWMutex
	status RunnerStatus
}

// NewCycleService builds a runner; ble may be nil to skip the BLE sweep.
func NewCycleService(wifi radio.WifiRadio, ble radio.BLERadio, scanner Scanner, attempts Attempts, policy Policy, log *logger.Logger) *CycleService {
	return &CycleService{
		wifi:     wifi,
		ble:      ble,
		scanner:  scanner,
		attempts: attempts,
		policy:   policy,
		log:      log.Named("cycle"),
		now:      time.Now,
	}
}

// RunCycle blocks until the cycle completes. Concurrent callers queue on the
// radio lock. Cancellation is honored between targets, never inside an attempt.
func (s *CycleService) RunCycle(ctx context.Context) CycleReport {
	s.run.Lock()
	defer s.run.Unlock()
	s.setBusy(true)

	rep := CycleReport{
		ID:        uuid.NewString(),
		StartedAt: s.now().UTC(),
		Targets:   []models.Target{},
		Outcomes:  []models.AttemptOutcome{},
		BLE:       []models.BleSighting{},
	}
	s.log.Infow("cycle started", "id", rep.ID)

	targets, err := s.scanner.ScanWifi(ctx, s.wifi)
	if err != nil {
		rep.Errors = append(rep.Errors, err.Error())
	}
	if targets != nil {
		rep.Targets = targets
	}

	for _, t := range targets {
		if ctx.Err() != nil {
			rep.Errors = append(rep.Errors, ctx.Err().Error())
			break
		}
		out, err := s.attempts.Attempt(ctx, s.wifi, t, s.policy.Passwords)
		if err != nil {
			rep.Errors = append(rep.Errors, err.Error())
		}
		rep.Outcomes = append(rep.Outcomes, out)
	}

	if s.ble != nil && ctx.Err() == nil {
		sightings, err := s.scanner.ScanBLE(ctx, s.ble, s.policy.BLEDurationSeconds)
		if err != nil {
			rep.Errors = append(rep.Errors, err.Error())
		}
		if sightings != nil {
			rep.BLE = sightings
		}
	}

	rep.FinishedAt = s.now().UTC()
	s.finish(rep)
	s.log.Infow("cycle finished",
		"id", rep.ID,
		"targets", len(rep.Targets),
		"cracked", countCracked(rep.Outcomes),
		"ble", len(rep.BLE),
		"errors", len(rep.Errors),
	)
	return rep
}

// Run executes a cycle right away and then every interval until ctx is canceled.
func (s *CycleService) Run(ctx context.Context, interval time.Duration) {
	s.setLooping(true)
	defer s.setLooping(false)

	s.RunCycle(ctx)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.RunCycle(ctx)
		}
	}
}

func (s *CycleService) Status() RunnerStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.status
	if st.Last != nil {
		last := *st.Last
		st.Last = &last
	}
	return st
}

func (s *CycleService) setBusy(b bool) {
	s.mu.Lock()
	s.status.Busy = b
	s.mu.Unlock()
}

func (s *CycleService) setLooping(b bool) {
	s.mu.Lock()
	s.status.Looping = b
	s.mu.Unlock()
}

func (s *CycleService) finish(rep CycleReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Busy = false
	s.status.Cycles++
	s.status.Last = &rep
}

func countCracked(outcomes []models.AttemptOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Succeeded {
			n++
		}
	}
	return n
}
