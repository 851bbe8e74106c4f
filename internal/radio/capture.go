package radio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"radiorecon/internal/models"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// capability bit for WEP/WPA privacy in beacon frames
const dot11CapPrivacy = 0x0010

var wpaVendorOUI = []byte{0x00, 0x50, 0xf2, 0x01}

// CaptureWifi replays a monitor-mode pcap: each Scan returns one observation
// per BSSID seen in beacon or probe-response frames, in first-seen order.
// It cannot associate.
type CaptureWifi struct {
	mu     sync.Mutex
	path   string
	active bool
}

var (
	_ WifiRadio = (*CaptureWifi)(nil)
	_ Activator = (*CaptureWifi)(nil)
)

func NewCaptureWifi(path string) *CaptureWifi {
	return &CaptureWifi{path: path}
}

func (c *CaptureWifi) Activate(on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if on {
		if _, err := os.Stat(c.path); err != nil {
			return fmt.Errorf("capture file: %w: %v", models.ErrHardwareUnavailable, err)
		}
	}
	c.active = on
	return nil
}

func (c *CaptureWifi) IsActive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

func (c *CaptureWifi) Scan() ([]models.WifiObservation, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()
	return readBeacons(f)
}

func (c *CaptureWifi) Connect(ssid, password string) error {
	return fmt.Errorf("%w: capture replay cannot associate with %q", models.ErrConnection, ssid)
}

func (c *CaptureWifi) IsConnected() bool { return false }

func (c *CaptureWifi) Disconnect() error { return nil }

func readBeacons(r io.Reader) ([]models.WifiObservation, error) {
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read pcap header: %w", err)
	}

	var out []models.WifiObservation
	index := make(map[[6]byte]int)

	for {
		data, _, err := pr.ReadPacketData()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, fmt.Errorf("read packet: %w", err)
		}
		obs, ok := observationFromPacket(gopacket.NewPacket(data, pr.LinkType(), gopacket.Default))
		if !ok {
			continue
		}
		if i, seen := index[obs.BSSID]; seen {
			out[i].RSSI = obs.RSSI
			continue
		}
		index[obs.BSSID] = len(out)
		out = append(out, obs)
	}
	return out, nil
}

func observationFromPacket(p gopacket.Packet) (models.WifiObservation, bool) {
	var obs models.WifiObservation

	dl, ok := p.Layer(layers.LayerTypeDot11).(*layers.Dot11)
	if !ok {
		return obs, false
	}
	if dl.Type != layers.Dot11TypeMgmtBeacon && dl.Type != layers.Dot11TypeMgmtProbeResp {
		return obs, false
	}
	if len(dl.Address3) != 6 {
		return obs, false
	}
	copy(obs.BSSID[:], dl.Address3)

	if rt, ok := p.Layer(layers.LayerTypeRadioTap).(*layers.RadioTap); ok {
		if rt.Present.DBMAntennaSignal() {
			obs.RSSI = int(rt.DBMAntennaSignal)
		}
		obs.Channel = channelFromFrequency(int(rt.ChannelFrequency))
	}

	var privacy bool
	if b, ok := p.Layer(layers.LayerTypeDot11MgmtBeacon).(*layers.Dot11MgmtBeacon); ok {
		privacy = b.Flags&dot11CapPrivacy != 0
	}
	if pr, ok := p.Layer(layers.LayerTypeDot11MgmtProbeResp).(*layers.Dot11MgmtProbeResp); ok {
		privacy = pr.Flags&dot11CapPrivacy != 0
	}

	var haveSSID, haveChannel, rsn, wpa bool
	for _, l := range p.Layers() {
		ie, ok := l.(*layers.Dot11InformationElement)
		if !ok {
			continue
		}
		switch ie.ID {
		case layers.Dot11InformationElementIDSSID:
			if !haveSSID {
				obs.SSID = append([]byte(nil), ie.Info...)
				haveSSID = true
			}
		case layers.Dot11InformationElementIDDSSet:
			if !haveChannel && len(ie.Info) > 0 {
				obs.Channel = int(ie.Info[0])
				haveChannel = true
			}
		case layers.Dot11InformationElementIDRSNInfo:
			rsn = true
		case layers.Dot11InformationElementIDVendor:
			if bytes.Equal(ie.OUI, wpaVendorOUI) {
				wpa = true
			}
		}
	}

	obs.Hidden = len(bytes.Trim(obs.SSID, "\x00")) == 0
	switch {
	case rsn && wpa:
		obs.AuthMode = models.AuthWPAWPA2PSK
	case rsn:
		obs.AuthMode = models.AuthWPA2PSK
	case wpa:
		obs.AuthMode = models.AuthWPAPSK
	case privacy:
		obs.AuthMode = models.AuthWEP
	default:
		obs.AuthMode = models.AuthOpen
	}
	return obs, true
}

func channelFromFrequency(mhz int) int {
	switch {
	case mhz == 2484:
		return 14
	case mhz >= 2412 && mhz <= 2472:
		return (mhz - 2407) / 5
	case mhz >= 5000 && mhz <= 5900:
		return (mhz - 5000) / 5
	default:
		return 0
	}
}
