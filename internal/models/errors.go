package models

import "errors"

// Error kinds shared by the radio, scan, attempt and logging layers.
// Wrap them with %w and test with errors.Is.
var (
	ErrHardwareUnavailable = errors.New("hardware unavailable")
	ErrDecode              = errors.New("undecodable bytes")
	ErrConnection          = errors.New("connection error")
	ErrLogWrite            = errors.New("log write failure")
)
