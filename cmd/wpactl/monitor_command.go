package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"wpactl/internal/ctrl"
	"wpactl/internal/eventlog"
	"wpactl/internal/logging"
	"wpactl/internal/monitor"
)

func newMonitorCommand(ctx *commandContext) *cobra.Command {
	var record bool

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Stream control-interface events until interrupted",
		Long: "Attach a dedicated event session and print each event as it\n" +
			"arrives. With --record (or event_log.enabled in the config),\n" +
			"events are also written to the SQLite event log for later\n" +
			"inspection with `wpactl events`.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			socket, err := ctx.socketPath()
			if err != nil {
				return err
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			logger, err := logging.NewFileLogger(logging.Options{
				Level:  cfg.Logging.Level,
				Format: cfg.Logging.Format,
			}, cfg.Logging.Dir, "monitor.log")
			if err != nil {
				return err
			}

			var store *eventlog.Store
			if record || cfg.EventLog.Enabled {
				store, err = eventlog.Open(cmd.Context(), cfg.EventLog.Path)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			m, err := monitor.New(monitor.Options{
				Interface:    cfg.Control.Interface,
				SocketPath:   socket,
				LocalDir:     cfg.Control.LocalDir,
				Logger:       logger,
				Store:        store,
				PollInterval: cfg.MonitorPollInterval(),
				LockDir:      cfg.Monitor.LockDir,
				Netlink:      cfg.Monitor.Netlink,
				Handler: func(ev ctrl.Event) {
					fmt.Fprintln(cmd.OutOrStdout(), ev.String())
				},
			})
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return m.Run(runCtx)
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "Record events to the SQLite event log")
	return cmd
}
