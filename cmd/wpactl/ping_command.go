package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wpactl/internal/wpa"
)

func newPingCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the daemon responds on its control socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *wpa.Client) error {
				if err := client.Ping(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "PONG")
				return nil
			})
		},
	}
}
