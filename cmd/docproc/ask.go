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

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question over the stored documents",
	Long: `Ask runs retrieval-augmented question answering against the active
engine and prints the answer with its confidence and source citations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	answer, err := client.AskQuestion(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}

	fmt.Println(answer.Answer)
	fmt.Printf("\nConfidence: %.2f (engine: %s, method: %s)\n",
		answer.Confidence, answer.EngineUsed, answer.Method)

	if len(answer.Sources) > 0 {
		fmt.Println("Sources:")
		for _, s := range answer.Sources {
			fmt.Printf("  %s (chunk %s)\n", s.DocID, s.ChunkID)
		}
	}
	return nil
}

func init() {
	askCmd.Flags().Bool("json", false, "output the answer as JSON")

	rootCmd.AddCommand(askCmd)
}
