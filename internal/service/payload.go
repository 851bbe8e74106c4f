package service

import (
	"fmt"

	"radiorecon/internal/models"
)

// Log line payloads. Downstream tooling parses these byte for byte.

const payloadWlanInitSuccess = "WLAN|INIT|SUCCESS"

func payloadWlanInitError(msg string) string {
	return "WLAN|INIT|ERROR|" + msg
}

func payloadWifiScan(ssid, mac string, rssi int) string {
	return fmt.Sprintf("WIFI_SCAN|SSID:%s|MAC:%s|RSSI:%d", ssid, mac, rssi)
}

func payloadWifiCracked(ssid, password string) string {
	return fmt.Sprintf("WIFI_CRACKED|SSID:%s|PASS:%s", ssid, password)
}

func payloadBLE(mac, name string, rssi int) string {
	return fmt.Sprintf("BLE|MAC:%s|NAME:%s|RSSI:%d", mac, name, rssi)
}

var knownCategories = map[models.Category]bool{
	models.CategoryWlanInit:    true,
	models.CategoryWifiScan:    true,
	models.CategoryWifiCracked: true,
	models.CategoryBLE:         true,
}
