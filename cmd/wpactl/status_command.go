package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"wpactl/internal/wpa"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's current connection status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *wpa.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, status.Values)
				}
				printStatus(cmd, status)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit raw status values as JSON")
	return cmd
}

func printStatus(cmd *cobra.Command, status *wpa.Status) {
	stdout := cmd.OutOrStdout()

	// Well-known fields first, then everything else alphabetically.
	known := []struct{ label, value string }{
		{"state", status.WpaState},
		{"ssid", status.SSID},
		{"bssid", status.BSSID},
		{"mode", status.Mode},
		{"key_mgmt", status.KeyMgmt},
		{"ip_address", status.IPAddress},
		{"address", status.Address},
	}
	shown := map[string]bool{"wpa_state": true, "ssid": true, "bssid": true,
		"mode": true, "key_mgmt": true, "ip_address": true, "address": true, "freq": true}

	for _, field := range known {
		if field.value != "" {
			fmt.Fprintf(stdout, "%-12s %s\n", field.label, field.value)
		}
	}
	if status.Frequency > 0 {
		fmt.Fprintf(stdout, "%-12s %d MHz\n", "freq", status.Frequency)
	}

	rest := make([]string, 0, len(status.Values))
	for key := range status.Values {
		if !shown[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		fmt.Fprintf(stdout, "%-12s %s\n", key, status.Values[key])
	}
}
