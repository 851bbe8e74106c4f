package radio

import (
	"bytes"
	"net"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"radiorecon/internal/models"
)

var (
	iwAddressRegex    = regexp.MustCompile(`Address: ([0-9A-Fa-f:]{17})`)
	iwChannelRegex    = regexp.MustCompile(`Channel[: ](\d+)`)
	iwSignalRegex     = regexp.MustCompile(`Signal level=(-?\d+) dBm`)
	iwEncryptionRegex = regexp.MustCompile(`Encryption key:(on|off)`)
	iwESSIDRegex      = regexp.MustCompile(`(?m)ESSID:"(.*)"\s*$`)
	iwWPA2Regex       = regexp.MustCompile(`IE: IEEE 802.11i/WPA2 Version`)
	iwWPARegex        = regexp.MustCompile(`IE: WPA Version 1`)
)

// runIWList runs `iwlist <iface> scan` and returns its stdout.
func runIWList(iface string) ([]byte, error) {
	cmd := exec.Command("iwlist", iface, "scan")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// parseIWListOutput turns iwlist cells into observations in the order printed.
// Cells without an address are skipped.
func parseIWListOutput(output string) []models.WifiObservation {
	var networks []models.WifiObservation

	for _, cell := range strings.Split(output, "Cell ")[1:] {
		address := iwAddressRegex.FindStringSubmatch(cell)
		if len(address) < 2 {
			continue
		}
		hw, err := net.ParseMAC(address[1])
		if err != nil || len(hw) != 6 {
			continue
		}

		var obs models.WifiObservation
		copy(obs.BSSID[:], hw)

		if m := iwChannelRegex.FindStringSubmatch(cell); len(m) > 1 {
			obs.Channel, _ = strconv.Atoi(m[1])
		}
		if m := iwSignalRegex.FindStringSubmatch(cell); len(m) > 1 {
			obs.RSSI, _ = strconv.Atoi(m[1])
		}
		if m := iwESSIDRegex.FindStringSubmatch(cell); len(m) > 1 {
			obs.SSID = unescapeIWString(m[1])
		}
		obs.Hidden = len(bytes.Trim(obs.SSID, "\x00")) == 0

		encryption := iwEncryptionRegex.FindStringSubmatch(cell)
		switch {
		case len(encryption) < 2 || encryption[1] == "off":
			obs.AuthMode = models.AuthOpen
		case iwWPA2Regex.MatchString(cell) && iwWPARegex.MatchString(cell):
			obs.AuthMode = models.AuthWPAWPA2PSK
		case iwWPA2Regex.MatchString(cell):
			obs.AuthMode = models.AuthWPA2PSK
		case iwWPARegex.MatchString(cell):
			obs.AuthMode = models.AuthWPAPSK
		default:
			obs.AuthMode = models.AuthWEP
		}

		networks = append(networks, obs)
	}

	return networks
}

// unescapeIWString decodes the \xHH escapes wireless-tools uses for
// non-printable SSID bytes, so the raw SSID survives for UTF-8 validation.
func unescapeIWString(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && s[i+1] == 'x' {
			if v, err := strconv.ParseUint(s[i+2:i+4], 16, 8); err == nil {
				out = append(out, byte(v))
				i += 3
				continue
			}
		}
		out = append(out, s[i])
	}
	return out
}
