package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run a single Wi-Fi or BLE sweep",
}

var scanWifiCmd = &cobra.Command{
	Use:   "wifi",
	Short: "Scan Wi-Fi networks and print keyword targets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.services.Init(ctx, a.wifi); err != nil {
			return err
		}
		targets, err := a.services.ScanWifi(ctx, a.wifi)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), targets)
	},
}

var scanBLECmd = &cobra.Command{
	Use:   "ble",
	Short: "Scan BLE peripherals and print sightings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		sightings, err := a.services.ScanBLE(cmd.Context(), a.ble, cfg.BLESeconds)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), sightings)
	},
}

func init() {
	scanBLECmd.Flags().Int("duration", 0, "scan duration in seconds")
	bindFlags(scanBLECmd, map[string]string{"ble.duration_seconds": "duration"})
	scanCmd.AddCommand(scanWifiCmd, scanBLECmd)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
