package service

import (
	"context"
	"time"

	"radiorecon/internal/logger"

	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// DeviceStats is a host health snapshot. Zero values mean "unavailable".
type DeviceStats struct {
	UptimeSeconds  uint64  `json:"uptime_seconds"`
	MemUsedPercent float64 `json:"mem_used_percent"`
}

// Status is what the operator API reports.
type Status struct {
	Backend string       `json:"backend"`
	Runner  RunnerStatus `json:"runner"`
	Device  DeviceStats  `json:"device"`
	At      time.Time    `json:"at"`
}

type runnerStatuser interface {
	Status() RunnerStatus
}

type MonitoringService struct {
	backend string
	runner  runnerStatuser
	log     *logger.Logger

	uptime  func(ctx context.Context) (uint64, error)
	memUsed func(ctx context.Context) (float64, error)
}

func NewMonitoringService(backend string, runner runnerStatuser, log *logger.Logger) *MonitoringService {
	return &MonitoringService{
		backend: backend,
		runner:  runner,
		log:     log.Named("monitoring"),
		uptime:  host.UptimeWithContext,
		memUsed: func(ctx context.Context) (float64, error) {
			vm, err := mem.VirtualMemoryWithContext(ctx)
			if err != nil {
				return 0, err
			}
			return vm.UsedPercent, nil
		},
	}
}

// GetStatus never fails on host stats; unreadable values are left at zero.
func (s *MonitoringService) GetStatus(ctx context.Context) (Status, error) {
	if err := ctx.Err(); err != nil {
		return Status{}, err
	}
	st := Status{Backend: s.backend, At: time.Now().UTC()}
	if s.runner != nil {
		st.Runner = s.runner.Status()
	}
	if up, err := s.uptime(ctx); err != nil {
		s.log.Debugw("uptime unavailable", "err", err)
	} else {
		st.Device.UptimeSeconds = up
	}
	if used, err := s.memUsed(ctx); err != nil {
		s.log.Debugw("memory stats unavailable", "err", err)
	} else {
		st.Device.MemUsedPercent = used
	}
	return st, nil
}
