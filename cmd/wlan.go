package main

import (
	"radiorecon/internal/config"

	"github.com/spf13/cobra"
)

var wlanInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Bring the Wi-Fi interface up in station mode",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()
		return a.services.Init(cmd.Context(), a.wifi)
	},
}

// bindFlags binds command-local flags onto config keys.
func bindFlags(cmd *cobra.Command, keys map[string]string) {
	cobra.CheckErr(config.BindFlags(v, cmd.Flags(), keys))
}
