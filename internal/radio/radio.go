// Package radio defines the Wi-Fi and BLE capabilities the scan/attempt core
// consumes, the device tick clock, and the concrete backends (simulator,
// Linux nl80211, pcap capture replay).
package radio

import "radiorecon/internal/models"

// WifiRadio is a station-mode Wi-Fi interface.
// Connect only issues the association request; callers poll IsConnected.
type WifiRadio interface {
	IsActive() bool
	Scan() ([]models.WifiObservation, error)
	Connect(ssid, password string) error
	IsConnected() bool
	Disconnect() error
}

// BLERadio is a Bluetooth LE central able to run a blocking GAP scan.
type BLERadio interface {
	Activate(on bool) error
	GapScan(durationMillis, windowMillis int) ([]models.BleObservation, error)
}

// Activator is implemented by Wi-Fi radios that can be powered up or down.
type Activator interface {
	Activate(on bool) error
}
