package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"wpactl/internal/eventlog"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit   int
		allIfcs bool
		prune   bool
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recorded control events from the event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := eventlog.Open(cmd.Context(), cfg.EventLog.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			if prune {
				cutoff := time.Now().AddDate(0, 0, -cfg.EventLog.RetentionDays)
				removed, err := store.Prune(cmd.Context(), cutoff)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d events older than %d days\n",
					removed, cfg.EventLog.RetentionDays)
			}

			iface := cfg.Control.Interface
			if allIfcs {
				iface = ""
			}
			records, err := store.Recent(cmd.Context(), iface, limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd, records)
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded events")
				return nil
			}
			rows := make([][]string, 0, len(records))
			for _, rec := range records {
				rows = append(rows, []string{
					rec.ReceivedAt.Local().Format(time.RFC3339),
					rec.Interface,
					strconv.Itoa(rec.Severity),
					rec.Body,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
				[]string{"Received", "Interface", "Sev", "Event"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of events to show")
	cmd.Flags().BoolVar(&allIfcs, "all", false, "Show events from every interface")
	cmd.Flags().BoolVar(&prune, "prune", false, "Prune events past the retention window first")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit events as JSON")
	return cmd
}
