package main

import (
	"fmt"
	"os"

	"radiorecon/internal/config"
	"radiorecon/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	v       = config.New()
	cfg     config.Config
	log     *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "radiorecon",
	Short: "Wi-Fi/BLE reconnaissance and credential attempt engine",
	Long: `Scans nearby Wi-Fi networks and BLE peripherals, flags networks whose SSID
matches a keyword, tries a short password list against them and records
everything to append-only log files.

Examples:
  radiorecon serve                          # operator API plus periodic cycles
  radiorecon scan wifi --backend linux      # one passive Wi-Fi sweep on wlan0
  radiorecon scan ble --duration 10         # one BLE sweep
  radiorecon attempt --ssid Cisco-Lobby     # try the password list once`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		var err error
		cfg, err = config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		log = logger.Get(cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default configs/config.yml)")
	pf.String("log-level", "", "debug, info, warn or error")
	pf.String("backend", "", "radio backend: sim, linux or capture")
	pf.String("iface", "", "wireless interface for the linux backend")
	pf.String("capture", "", "pcap file for the capture backend")
	pf.String("db", "", "sqlite database path")

	cobra.CheckErr(config.BindFlags(v, pf, map[string]string{
		"log.level":          "log-level",
		"radio.backend":      "backend",
		"radio.interface":    "iface",
		"radio.capture_file": "capture",
		"db.path":            "db",
	}))

	rootCmd.AddCommand(serveCmd, scanCmd, attemptCmd, wlanInitCmd)
}
