package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sandbox/internal/appinfo"
	"sandbox/internal/update"
)

func newCheckCmd(stdout io.Writer) *cobra.Command {
	var jsonOutput bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check for a newer release and print the result",
		Long: `Check for a newer release and print the result.

Exits 1 when the check fails. Builds without a release version (such as
"dev") cannot be compared, so they fail with invalid_version without
contacting the update source.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, initiator, err := loadApp()
			if err != nil {
				return err
			}
			defer initiator.Close()

			req := runCheck(initiator)
			if jsonOutput {
				if err := writeCheckJSON(stdout, req); err != nil {
					return err
				}
			} else {
				writeCheckText(stdout, info, req)
			}
			if req.Status == update.StatusFailed {
				return errCheckFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	return cmd
}

// checker is the part of the initiator a headless check needs.
type checker interface {
	CheckForUpdates() bool
	Updates() <-chan update.Request
	Current() update.Request
}

// runCheck starts one check and blocks until it reaches a terminal status.
// The initiator's own deadline bounds the wait.
func runCheck(c checker) update.Request {
	c.CheckForUpdates()
	for req := range c.Updates() {
		if req.Status.IsTerminal() {
			return req
		}
	}
	// Channel closed before a result arrived.
	return c.Current()
}

func writeCheckJSON(w io.Writer, req update.Request) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(req); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

func writeCheckText(w io.Writer, info appinfo.Info, req update.Request) {
	switch req.Status {
	case update.StatusUpToDate:
		fmt.Fprintf(w, "%s %s is up to date.\n", info.Name, req.CurrentVersion)
	case update.StatusUpdateAvailable:
		fmt.Fprintf(w, "Update available: %s (you have %s)\n", req.LatestVersion, req.CurrentVersion)
		if req.NotesURL != "" {
			fmt.Fprintf(w, "Release notes: %s\n", req.NotesURL)
		}
		fmt.Fprintln(w, update.DetectInstallMethod().Hint(info.Name))
	case update.StatusFailed:
		fmt.Fprintf(w, "Update check failed: %s\n", req.Reason)
	default:
		fmt.Fprintf(w, "Update check did not finish (%s).\n", req.Status)
	}
}
