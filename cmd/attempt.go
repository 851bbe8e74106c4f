package main

import (
	"errors"

	"radiorecon/internal/models"

	"github.com/spf13/cobra"
)

var attemptCmd = &cobra.Command{
	Use:   "attempt",
	Short: "Try the configured password list against one SSID",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ssid, _ := cmd.Flags().GetString("ssid")
		if ssid == "" {
			return errors.New("--ssid is required")
		}
		passwords := cfg.Passwords
		if extra, _ := cmd.Flags().GetStringSlice("password"); len(extra) > 0 {
			passwords = extra
		}

		a, err := newApp(cfg, log)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.services.Init(ctx, a.wifi); err != nil {
			return err
		}
		out, err := a.services.Attempt(ctx, a.wifi, models.Target{SSID: ssid}, passwords)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), out)
	},
}

func init() {
	attemptCmd.Flags().String("ssid", "", "target network name")
	attemptCmd.Flags().StringSlice("password", nil, "override the configured password list")
}
