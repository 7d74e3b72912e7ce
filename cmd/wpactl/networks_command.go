package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"wpactl/internal/wpa"
)

func newNetworksCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "List the daemon's configured networks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *wpa.Client) error {
				networks, err := client.ListNetworks()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, networks)
				}
				if len(networks) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No networks configured")
					return nil
				}
				rows := make([][]string, 0, len(networks))
				for _, n := range networks {
					rows = append(rows, []string{
						strconv.Itoa(n.ID), n.SSID, n.BSSID, n.Flags,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
					[]string{"ID", "SSID", "BSSID", "Flags"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft}))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit networks as JSON")
	return cmd
}
