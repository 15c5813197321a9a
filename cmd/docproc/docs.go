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

	"github.com/Marbrgr/DocProc/internal/poll"
	"github.com/Marbrgr/DocProc/pkg/types"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Manage documents (list, show, upload, download, rm)",
	Long: `Docs manages the documents stored in the service. Upload feeds new
files in, list and show inspect them, download retrieves the original
bytes, and rm deletes a document along with its index vectors.`,
}

// --- list subcommand ---

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored documents",
	RunE:  runDocsList,
}

func runDocsList(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := client.ListDocuments(context.Background())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No documents stored.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-6s  %-10s  %-12s  %s\n",
		"ID", "Name", "Type", "Size", "Class", "Confidence")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 108))

	for _, d := range docs {
		name := truncate(d.FileName, 30)
		class := d.AIDocumentType
		confidence := "-"
		if d.AnalysisPending() {
			class = "pending"
		} else {
			confidence = fmt.Sprintf("%.2f", d.AIConfidence)
		}
		fmt.Fprintf(os.Stdout, "%-36s  %-30s  %-6s  %-10d  %-12s  %s\n",
			d.ID, name, d.FileType, d.FileSize, class, confidence)
	}

	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(docs))
	return nil
}

// --- show subcommand ---

var docsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one document, optionally waiting for its analysis",
	Long: `Show fetches a single document and prints its metadata, extracted text
preview, and AI classification. With --wait, a document whose analysis has
not materialized yet is polled until it completes or the attempt budget
runs out.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsShow,
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	ws, store, err := newWorkspace()
	if err != nil {
		return err
	}
	defer store.Close()
	defer ws.Close()

	rec, outcomes, err := ws.Focus(context.Background(), args[0])
	if err != nil {
		return err
	}

	wait, _ := cmd.Flags().GetBool("wait")
	if wait && outcomes != nil {
		fmt.Fprintln(os.Stderr, "Waiting for analysis...")
		outcome := <-outcomes
		switch outcome.Status {
		case poll.StatusCompleted:
			rec = outcome.Record
		case poll.StatusTimedOut:
			fmt.Fprintf(os.Stderr, "Analysis still pending after %d checks.\n", outcome.Attempts)
		}
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	printDocument(rec)
	return nil
}

func printDocument(d types.DocumentRecord) {
	fmt.Printf("ID:         %s\n", d.ID)
	fmt.Printf("Name:       %s\n", d.FileName)
	fmt.Printf("Type:       %s\n", d.FileType)
	fmt.Printf("Size:       %d bytes\n", d.FileSize)
	fmt.Printf("Created:    %s\n", d.CreatedAt.Format("2006-01-02 15:04:05 MST"))

	if d.AnalysisPending() {
		fmt.Println("Analysis:   pending")
	} else {
		fmt.Printf("Class:      %s (%.2f", d.AIDocumentType, d.AIConfidence)
		if d.AIModelUsed != "" {
			fmt.Printf(", %s", d.AIModelUsed)
		}
		fmt.Println(")")
	}

	if len(d.AIKeyInformation) > 0 {
		keys := make([]string, 0, len(d.AIKeyInformation))
		for k := range d.AIKeyInformation {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Println("Extracted fields:")
		for _, k := range keys {
			fmt.Printf("  %s: %v\n", k, d.AIKeyInformation[k])
		}
	}

	if d.ExtractedText != "" {
		fmt.Printf("Text preview:\n%s\n", truncate(d.ExtractedText, 400))
	}
}

// truncate shortens s to at most n runes, marking the cut with "...".
// Cutting on rune boundaries keeps multi-byte names and content intact.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// --- upload subcommand ---

var docsUploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload one or more files for processing",
	Long: `Upload sends PDF, PNG, or JPEG files (up to 10 MiB each) to the
service. Files that fail client-side validation are reported and skipped
without contacting the server.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocsUpload,
}

func runDocsUpload(cmd *cobra.Command, args []string) error {
	ws, store, err := newWorkspace()
	if err != nil {
		return err
	}
	defer store.Close()
	defer ws.Close()

	quiet, _ := cmd.Flags().GetBool("quiet")
	failed := 0

	for _, path := range args {
		var progress func(float64)
		if !quiet {
			progress = func(fraction float64) {
				fmt.Fprintf(os.Stderr, "\r%s: %3.0f%%", path, fraction*100)
			}
		}

		rec, err := ws.Upload(context.Background(), path, progress)
		if !quiet {
			fmt.Fprintln(os.Stderr)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		fmt.Printf("Uploaded %s (id %s)\n", rec.FileName, rec.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to upload", failed)
	}
	return nil
}

// --- download subcommand ---

var docsDownloadCmd = &cobra.Command{
	Use:   "download <id> [dest]",
	Short: "Download a document's original bytes",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runDocsDownload,
}

func runDocsDownload(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	id := args[0]
	dest := ""
	if len(args) == 2 {
		dest = args[1]
	} else {
		rec, err := client.GetDocument(context.Background(), id)
		if err != nil {
			return err
		}
		dest = rec.FileName
	}

	n, err := client.DownloadDocument(context.Background(), id, dest)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d bytes)\n", dest, n)
	return nil
}

// --- rm subcommand ---

var docsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a document and its index vectors",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocsRm,
}

func runDocsRm(cmd *cobra.Command, args []string) error {
	client, store, err := newClient()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := client.DeleteDocument(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Println(result.Message)
	engines := make([]string, 0, len(result.VectorCleanup))
	for name := range result.VectorCleanup {
		engines = append(engines, name)
	}
	sort.Strings(engines)
	for _, name := range engines {
		state := "cleaned"
		if !result.VectorCleanup[name] {
			state = "FAILED"
		}
		fmt.Printf("  %s: vectors %s\n", name, state)
	}
	return nil
}

func init() {
	docsListCmd.Flags().Bool("json", false, "output documents as JSON")

	docsShowCmd.Flags().Bool("wait", false, "poll until the AI analysis completes")
	docsShowCmd.Flags().Bool("json", false, "output the document as JSON")

	docsUploadCmd.Flags().Bool("quiet", false, "suppress per-file progress output")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	docsCmd.AddCommand(docsUploadCmd)
	docsCmd.AddCommand(docsDownloadCmd)
	docsCmd.AddCommand(docsRmCmd)

	rootCmd.AddCommand(docsCmd)
}
