// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Inspect and switch retrieval engines",
}

// --- status subcommand ---

var enginesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active engine and per-engine details",
	RunE:  runEnginesStatus,
}

func runEnginesStatus(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	status, err := client.EngineStatus(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	fmt.Printf("Active engine: %s\n\n", status.CurrentEngine)

	names := append([]string(nil), status.AvailableEngines...)
	sort.Strings(names)

	for _, name := range names {
		info := status.EngineDetails[name]
		marker := " "
		if name == status.CurrentEngine {
			marker = "*"
		}
		availability := "available"
		if !info.IsAvailable {
			availability = "UNAVAILABLE"
		}
		fmt.Printf("%s %s (%s)\n", marker, name, availability)
		if info.Model != "" {
			fmt.Printf("    model: %s\n", info.Model)
		}
		if info.RAGImplementation != "" {
			fmt.Printf("    rag: %s\n", info.RAGImplementation)
		}
		fmt.Printf("    documents stored: %d\n", info.DocumentsStored)
		if len(info.Features) > 0 {
			features := make([]string, 0, len(info.Features))
			for f, enabled := range info.Features {
				if enabled {
					features = append(features, f)
				}
			}
			sort.Strings(features)
			fmt.Printf("    features: %s\n", strings.Join(features, ", "))
		}
	}
	return nil
}

// --- switch subcommand ---

var enginesSwitchCmd = &cobra.Command{
	Use:   "switch <engine>",
	Short: "Make a different engine active",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, store, err := newClient()
		if err != nil {
			return err
		}
		defer store.Close()

		result, err := client.SwitchEngine(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s (active: %s)\n", result.Message, result.CurrentEngine)
		return nil
	},
}

func init() {
	enginesStatusCmd.Flags().Bool("json", false, "output engine status as JSON")

	enginesCmd.AddCommand(enginesStatusCmd)
	enginesCmd.AddCommand(enginesSwitchCmd)

	rootCmd.AddCommand(enginesCmd)
}
