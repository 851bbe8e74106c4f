package service

import (
	"time"

	"radiorecon/internal/models"
)

// LogFilter narrows the operator log listing. Zero values mean "any".
type LogFilter struct {
	Stream   models.Stream   // "", "general", "credential"
	Category models.Category // "", "WLAN_INIT", "WIFI_SCAN", "WIFI_CRACKED", "BLE"
	Limit    int             // most recent N, defaults to 100
}

// Policy is the injected targeting configuration.
type Policy struct {
	Keywords           []string
	Passwords          []string
	BLEDurationSeconds int
}

// AuthConfig configures operator token signing.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}
