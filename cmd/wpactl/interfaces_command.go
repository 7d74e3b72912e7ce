package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"wpactl/internal/wpa"
)

func newInterfacesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List interfaces with a control socket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			names, err := wpa.Interfaces(cfg.Control.CtrlDir)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No control sockets found under %s\n", cfg.Control.CtrlDir)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
