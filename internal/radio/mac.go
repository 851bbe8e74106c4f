package radio

import (
	"fmt"
	"strings"
)

// FormatMAC renders address bytes as lowercase colon-separated hex.
func FormatMAC(b []byte) string {
	parts := make([]string, len(b))
	for i, octet := range b {
		parts[i] = fmt.Sprintf("%02x", octet)
	}
	return strings.Join(parts, ":")
}
