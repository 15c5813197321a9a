// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Semantic search over stored documents",
	Long: `Search runs a semantic query against the currently active retrieval
engine and prints the matching chunks ranked by similarity.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	out, err := client.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(out.Results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-6s  %-30s  %-60s\n", "Rank", "Score", "Document", "Content")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 106))

	for i, r := range out.Results {
		content := truncate(strings.ReplaceAll(r.Content, "\n", " "), 60)
		name := truncate(r.FileName, 30)
		fmt.Fprintf(os.Stdout, "%-4d  %.3f  %-30s  %-60s\n", i+1, r.Similarity, name, content)
	}

	fmt.Fprintf(os.Stdout, "\n%d results (engine: %s)\n", len(out.Results), out.EngineUsed)
	return nil
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
