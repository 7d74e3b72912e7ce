package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"wpactl/internal/ctrl"
	"wpactl/internal/wpa"
)

const scanResultsEvent = "CTRL-EVENT-SCAN-RESULTS"

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		wait    time.Duration
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Trigger a scan and print the results",
		Long: "Attach for events, issue SCAN, wait for the daemon's scan-complete\n" +
			"announcement, then fetch and print SCAN_RESULTS.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withConn(func(conn *ctrl.Conn) error {
				client := wpa.NewClient(conn)

				if err := conn.Attach(); err != nil {
					return err
				}
				defer conn.Detach()

				if err := client.Scan(); err != nil {
					return err
				}

				if err := waitForScanResults(conn, wait); err != nil {
					return err
				}

				results, err := client.ScanResults()
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, results)
				}
				if len(results) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No networks found")
					return nil
				}
				rows := make([][]string, 0, len(results))
				for _, bss := range results {
					rows = append(rows, []string{
						bss.SSID, bss.BSSID,
						strconv.Itoa(bss.Frequency),
						strconv.Itoa(bss.Signal),
						bss.Flags,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(cmd.OutOrStdout(),
					[]string{"SSID", "BSSID", "Freq", "Signal", "Flags"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft}))
				return nil
			})
		},
	}
	cmd.Flags().DurationVar(&wait, "wait", 30*time.Second, "How long to wait for scan completion")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit scan results as JSON")
	return cmd
}

// waitForScanResults drains events until the scan-complete announcement
// arrives or the overall wait budget runs out.
func waitForScanResults(conn *ctrl.Conn, wait time.Duration) error {
	deadline := time.Now().Add(wait)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return fmt.Errorf("scan did not complete within %s", wait)
		}
		ev, err := conn.NextEvent(remaining)
		if errors.Is(err, ctrl.ErrTimeout) {
			return fmt.Errorf("scan did not complete within %s", wait)
		}
		if err != nil {
			return err
		}
		if strings.HasPrefix(ev.Body, scanResultsEvent) {
			return nil
		}
	}
}
