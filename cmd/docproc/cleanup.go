// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove orphaned index vectors across all engines",
	Long: `Cleanup asks the service to scan every engine's vector index for
entries whose document no longer exists and remove them. The operation
is all-or-nothing: a failure in any engine reports an error and no
partial counts.`,
	RunE: runCleanup,
}

func runCleanup(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	report, err := client.CleanupVectors(context.Background())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(report.Engines))
	for name := range report.Engines {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		e := report.Engines[name]
		fmt.Printf("%s: %d orphan(s) found, %d removed\n", name, e.OrphansFound, e.OrphansRemoved)
	}
	fmt.Printf("Total: %d found, %d removed\n", report.TotalFound, report.TotalRemoved)
	return nil
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}
