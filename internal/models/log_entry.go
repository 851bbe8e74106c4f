package models

import "time"

// Stream selects the logical log channel an entry is written to.
type Stream string

const (
	StreamGeneral    Stream = "general"
	StreamCredential Stream = "credential"
)

// Category tags every log line.
type Category string

const (
	CategoryWlanInit    Category = "WLAN_INIT"
	CategoryWifiScan    Category = "WIFI_SCAN"
	CategoryWifiCracked Category = "WIFI_CRACKED"
	CategoryBLE         Category = "BLE"
)

// LogEntry is a single append-only record. Ticks is the device-uptime
// millisecond counter and wraps; RecordedAt is wall-clock and only set by
// sinks that keep it.
type LogEntry struct {
	ID         string    `json:"id,omitempty"`
	Stream     Stream    `json:"stream"`
	Ticks      uint32    `json:"ticks"`
	Category   Category  `json:"category"`
	Payload    string    `json:"payload"`
	RecordedAt time.Time `json:"recorded_at,omitempty"`
}
