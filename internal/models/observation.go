package models

// AuthMode is the radio-reported authentication code of an access point.
type AuthMode int

const (
	AuthOpen AuthMode = iota
	AuthWEP
	AuthWPAPSK
	AuthWPA2PSK
	AuthWPAWPA2PSK
	AuthWPA2Enterprise
	AuthWPA3PSK
)

// WifiObservation is one visible network from a single scan. SSID holds the raw
// bytes as reported by the radio; they may not be valid UTF-8.
type WifiObservation struct {
	SSID     []byte   `json:"ssid"`
	BSSID    [6]byte  `json:"bssid"`
	Channel  int      `json:"channel"`
	RSSI     int      `json:"rssi"` // dBm
	AuthMode AuthMode `json:"auth_mode"`
	Hidden   bool     `json:"hidden"`
}

// BleObservation is one advertising peripheral from a GAP scan.
// A nil Name means the device did not advertise one.
type BleObservation struct {
	AddressType     int     `json:"address_type"`
	Address         [6]byte `json:"address"`
	AdvertisingType int     `json:"advertising_type"`
	RSSI            int     `json:"rssi"`
	Name            []byte  `json:"name,omitempty"`
}

// Target is a Wi-Fi network whose SSID matched the interest keywords.
type Target struct {
	SSID           string `json:"ssid"`
	MAC            string `json:"mac"`
	RSSI           int    `json:"rssi"`
	Channel        int    `json:"channel"`
	MatchedKeyword string `json:"matched_keyword"`
}

// BleSighting is the per-device result of a BLE scan.
type BleSighting struct {
	Name string `json:"name"`
	MAC  string `json:"mac"`
	RSSI int    `json:"rssi"`
}
