package radio

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"radiorecon/internal/models"
)

// SimNetwork is one access point served by SimWifi.
type SimNetwork struct {
	SSID     []byte
	BSSID    [6]byte
	Channel  int
	RSSI     int
	AuthMode models.AuthMode
	Hidden   bool
	// Password accepted by the AP. Empty means no password is ever accepted.
	Password string
	// AssociateAfter is how long association takes once the right password is sent.
	AssociateAfter time.Duration
}

// SimConnect records one Connect call.
type SimConnect struct {
	SSID     string
	Password string
}

// SimWifi is a scripted Wi-Fi radio driven by a Clock.
type SimWifi struct {
	mu sync.Mutex

	clock    Clock
	active   bool
	networks []SimNetwork
	// Jitter adds up to ±Jitter dBm of noise to reported RSSI.
	Jitter int

	// ScanErr and ConnectErrs inject faults; ConnectErrs is keyed by password.
	ScanErr     error
	ConnectErrs map[string]error
	ActivateErr error

	pendingSSID string
	readyAt     Ticks
	pending     bool
	connected   bool

	Connects    []SimConnect
	Disconnects int
}

var (
	_ WifiRadio = (*SimWifi)(nil)
	_ Activator = (*SimWifi)(nil)
)

// NewSimWifi returns an inactive simulator serving networks in the given order.
func NewSimWifi(clock Clock, networks ...SimNetwork) *SimWifi {
	return &SimWifi{clock: clock, networks: networks}
}

func (s *SimWifi) Activate(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ActivateErr != nil {
		return s.ActivateErr
	}
	s.active = on
	if !on {
		s.pending, s.connected = false, false
	}
	return nil
}

func (s *SimWifi) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *SimWifi) Scan() ([]models.WifiObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	if !s.active {
		return nil, fmt.Errorf("scan: %w", models.ErrHardwareUnavailable)
	}
	out := make([]models.WifiObservation, 0, len(s.networks))
	for _, n := range s.networks {
		rssi := n.RSSI
		if s.Jitter > 0 {
			rssi += rand.Intn(2*s.Jitter+1) - s.Jitter
		}
		out = append(out, models.WifiObservation{
			SSID:     append([]byte(nil), n.SSID...),
			BSSID:    n.BSSID,
			Channel:  n.Channel,
			RSSI:     rssi,
			AuthMode: n.AuthMode,
			Hidden:   n.Hidden,
		})
	}
	return out, nil
}

func (s *SimWifi) Connect(ssid, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Connects = append(s.Connects, SimConnect{SSID: ssid, Password: password})
	if err, ok := s.ConnectErrs[password]; ok {
		return err
	}
	if !s.active {
		return fmt.Errorf("connect: %w", models.ErrHardwareUnavailable)
	}
	s.pending, s.connected = false, false
	for _, n := range s.networks {
		if string(n.SSID) != ssid || n.Password == "" || n.Password != password {
			continue
		}
		s.pending = true
		s.pendingSSID = ssid
		s.readyAt = TicksAdd(s.clock.Ticks(), int(n.AssociateAfter/time.Millisecond))
		break
	}
	return nil
}

func (s *SimWifi) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending && TicksDiff(s.clock.Ticks(), s.readyAt) >= 0 {
		s.pending = false
		s.connected = true
	}
	return s.connected
}

func (s *SimWifi) Disconnect() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Disconnects++
	s.pending, s.connected = false, false
	s.pendingSSID = ""
	return nil
}

// SimBLE is a scripted BLE central.
type SimBLE struct {
	mu sync.Mutex

	active  bool
	devices []models.BleObservation

	ScanErr error

	Activations  []bool
	LastDuration int
	LastWindow   int
}

var _ BLERadio = (*SimBLE)(nil)

func NewSimBLE(devices ...models.BleObservation) *SimBLE {
	return &SimBLE{devices: devices}
}

func (s *SimBLE) Activate(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Activations = append(s.Activations, on)
	s.active = on
	return nil
}

// IsActive reports the current power state.
func (s *SimBLE) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *SimBLE) GapScan(durationMillis, windowMillis int) ([]models.BleObservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.LastDuration, s.LastWindow = durationMillis, windowMillis
	if s.ScanErr != nil {
		return nil, s.ScanErr
	}
	if !s.active {
		return nil, fmt.Errorf("gap scan: %w", models.ErrHardwareUnavailable)
	}
	out := make([]models.BleObservation, len(s.devices))
	copy(out, s.devices)
	return out, nil
}

// DemoNetworks is the environment used by the "sim" backend.
func DemoNetworks() []SimNetwork {
	return []SimNetwork{
		{SSID: []byte("Cisco-Lobby"), BSSID: [6]byte{0x00, 0x1a, 0x9c, 0x02, 0x10, 0xaf}, Channel: 6, RSSI: -48, AuthMode: models.AuthWPA2PSK, Password: "admin", AssociateAfter: 1200 * time.Millisecond},
		{SSID: []byte("HomeNet_5G"), BSSID: [6]byte{0x3c, 0x84, 0x6a, 0x11, 0x22, 0x33}, Channel: 36, RSSI: -71, AuthMode: models.AuthWPA2PSK, Password: "correct horse battery"},
		{SSID: []byte("School-Guest"), BSSID: [6]byte{0xf4, 0xf2, 0x6d, 0xaa, 0x01, 0x02}, Channel: 11, RSSI: -63, AuthMode: models.AuthWPAWPA2PSK, Password: "1qazxsw2", AssociateAfter: 2 * time.Second},
		{SSID: []byte{0xff, 0xfe, 'A', 'P'}, BSSID: [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}, Channel: 1, RSSI: -80, AuthMode: models.AuthWPA2PSK},
		{SSID: []byte{}, BSSID: [6]byte{0x02, 0x00, 0x00, 0x00, 0x00, 0x09}, Channel: 1, RSSI: -85, AuthMode: models.AuthWPA2PSK, Hidden: true},
	}
}

// DemoPeripherals is the BLE environment used by the "sim" backend.
func DemoPeripherals() []models.BleObservation {
	return []models.BleObservation{
		{AddressType: 0, Address: [6]byte{0xc0, 0x98, 0xe5, 0x49, 0x00, 0x01}, AdvertisingType: 0, RSSI: -55, Name: []byte("Mi Band 4")},
		{AddressType: 1, Address: [6]byte{0x7a, 0x11, 0x22, 0x33, 0x44, 0x55}, AdvertisingType: 3, RSSI: -77},
	}
}
