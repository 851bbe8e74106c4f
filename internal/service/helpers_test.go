package service

import (
	"context"
	"sync"
	"time"

	"radiorecon/internal/models"
	"radiorecon/internal/radio"
)

// stepClock advances only when Sleep is called.
type stepClock struct {
	now   radio.Ticks
	slept time.Duration
}

func (c *stepClock) Ticks() radio.Ticks { return c.now }

func (c *stepClock) Sleep(d time.Duration) {
	c.slept += d
	c.now = radio.TicksAdd(c.now, int(d/time.Millisecond))
}

// memSink is an in-memory log sink.
type memSink struct {
	mu      sync.Mutex
	entries []models.LogEntry
	err     error
}

func (m *memSink) Append(_ context.Context, e models.LogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.entries = append(m.entries, e)
	return nil
}

func (m *memSink) byCategory(c models.Category) []models.LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.LogEntry
	for _, e := range m.entries {
		if e.Category == c {
			out = append(out, e)
		}
	}
	return out
}

func newTestEvents(clk radio.Clock) (*EventLogService, *memSink) {
	sink := &memSink{}
	return NewEventLogService(clk, nil, nil, sink), sink
}

func activeSim(clk radio.Clock, networks ...radio.SimNetwork) *radio.SimWifi {
	w := radio.NewSimWifi(clk, networks...)
	_ = w.Activate(true)
	return w
}
