package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/finite-collective/docdesk/internal/config"
	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
)

var readJSON bool

var readCmd = &cobra.Command{
	Use:   "read [path]",
	Short: "Read a document",
	Long:  `Read a document by its root-relative path. Outputs raw Markdown by default, or the full document with metadata and reading time with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		c := client.New(cfg.ServiceURL, client.WithLogger(slog.Default()))

		doc, err := c.GetDocument(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading document: %v\n", err)
			os.Exit(1)
		}

		if readJSON {
			meta := doc.Metadata.Clone()
			meta[docs.MetaReadingTime] = docs.EstimateReadingTime(doc.Content)
			doc.Metadata = meta

			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(doc); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Print(doc.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
