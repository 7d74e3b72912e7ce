package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"wpactl/internal/ctrl"
)

func newRawCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "raw <COMMAND> [ARGS...]",
		Short: "Send a raw control command and print the reply verbatim",
		Long: "Send a raw control command (e.g. PING, LIST_NETWORKS, SET_NETWORK 0 ssid \"x\")\n" +
			"and print the daemon's reply exactly as received, FAIL included.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			return ctx.withConn(func(conn *ctrl.Conn) error {
				reply, err := conn.Request(command)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), reply)
				if !strings.HasSuffix(reply, "\n") {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				return nil
			})
		},
	}
}
