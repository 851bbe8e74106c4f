package radio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"radiorecon/internal/models"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// beaconFrame builds a raw 802.11 beacon with SSID and DS parameter IEs and a zero FCS.
func beaconFrame(bssid [6]byte, ssid []byte, channel byte, privacy bool) []byte {
	var b bytes.Buffer
	b.Write([]byte{0x80, 0x00, 0x00, 0x00})               // frame control (beacon), duration
	b.Write([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}) // addr1 broadcast
	b.Write(bssid[:])                                    // addr2
	b.Write(bssid[:])                                    // addr3
	b.Write([]byte{0x00, 0x00})                          // sequence
	b.Write(make([]byte, 8))                             // timestamp
	b.Write([]byte{0x64, 0x00})                          // beacon interval
	capInfo := byte(0x01)
	if privacy {
		capInfo |= dot11CapPrivacy
	}
	b.Write([]byte{capInfo, 0x00})
	b.WriteByte(0x00)
	b.WriteByte(byte(len(ssid)))
	b.Write(ssid)
	b.Write([]byte{0x03, 0x01, channel})
	b.Write([]byte{0x00, 0x00, 0x00, 0x00}) // FCS
	return b.Bytes()
}

func writeCapture(t *testing.T, frames ...[]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beacons.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeIEEE802_11); err != nil {
		t.Fatalf("header: %v", err)
	}
	for _, fr := range frames {
		ci := gopacket.CaptureInfo{Timestamp: time.Unix(0, 0), CaptureLength: len(fr), Length: len(fr)}
		if err := w.WritePacket(ci, fr); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	return path
}

func TestCaptureWifi_ScanReplaysBeacons(t *testing.T) {
	a := [6]byte{0x00, 0x1a, 0x9c, 0x02, 0x10, 0xaf}
	b := [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	path := writeCapture(t,
		beaconFrame(a, []byte("Public-Kab"), 6, true),
		beaconFrame(b, []byte{0xff, 0xfe}, 11, false),
		beaconFrame(a, []byte("Public-Kab"), 6, true),
	)

	c := NewCaptureWifi(path)
	if err := c.Activate(true); err != nil {
		t.Fatalf("activate: %v", err)
	}
	if !c.IsActive() {
		t.Fatalf("expected active")
	}

	obs, err := c.Scan()
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(obs) != 2 {
		t.Fatalf("expected one observation per BSSID, got %d", len(obs))
	}
	if string(obs[0].SSID) != "Public-Kab" || obs[0].Channel != 6 || obs[0].BSSID != a {
		t.Fatalf("unexpected first observation: %+v", obs[0])
	}
	if obs[0].AuthMode != models.AuthWEP {
		t.Fatalf("privacy bit without RSN should read as WEP, got %d", obs[0].AuthMode)
	}
	if !bytes.Equal(obs[1].SSID, []byte{0xff, 0xfe}) || obs[1].AuthMode != models.AuthOpen {
		t.Fatalf("unexpected second observation: %+v", obs[1])
	}
}

func TestCaptureWifi_CannotAssociate(t *testing.T) {
	c := NewCaptureWifi("unused.pcap")
	if err := c.Connect("x", "y"); !errors.Is(err, models.ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if c.IsConnected() {
		t.Fatalf("capture radio never associates")
	}
}

func TestCaptureWifi_ActivateMissingFile(t *testing.T) {
	c := NewCaptureWifi(filepath.Join(t.TempDir(), "missing.pcap"))
	if err := c.Activate(true); !errors.Is(err, models.ErrHardwareUnavailable) {
		t.Fatalf("expected ErrHardwareUnavailable, got %v", err)
	}
	if c.IsActive() {
		t.Fatalf("should stay inactive")
	}
}

func TestChannelFromFrequency(t *testing.T) {
	cases := map[int]int{2412: 1, 2437: 6, 2472: 13, 2484: 14, 5180: 36, 0: 0}
	for in, want := range cases {
		if got := channelFromFrequency(in); got != want {
			t.Fatalf("channelFromFrequency(%d) = %d; want %d", in, got, want)
		}
	}
}
