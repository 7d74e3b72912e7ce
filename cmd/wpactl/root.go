package main

import (
	"time"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var (
		configFlag  string
		ifaceFlag   string
		ctrlDirFlag string
		socketFlag  string
		timeoutFlag time.Duration
	)

	ctx := newCommandContext(&configFlag, &ifaceFlag, &ctrlDirFlag, &socketFlag, &timeoutFlag)

	rootCmd := &cobra.Command{
		Use:           "wpactl",
		Short:         "Control a running wpa_supplicant / hostapd daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&ifaceFlag, "interface", "i", "", "Interface name under the control directory")
	rootCmd.PersistentFlags().StringVar(&ctrlDirFlag, "ctrl-dir", "", "Daemon control socket directory")
	rootCmd.PersistentFlags().StringVar(&socketFlag, "socket", "", "Explicit daemon control socket path (overrides --interface)")
	rootCmd.PersistentFlags().DurationVar(&timeoutFlag, "timeout", 0, "Per-request deadline (e.g. 5s)")

	rootCmd.AddCommand(newPingCommand(ctx))
	rootCmd.AddCommand(newRawCommand(ctx))
	rootCmd.AddCommand(newStatusCommand(ctx))
	rootCmd.AddCommand(newNetworksCommand(ctx))
	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newMonitorCommand(ctx))
	rootCmd.AddCommand(newInterfacesCommand(ctx))
	rootCmd.AddCommand(newEventsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
