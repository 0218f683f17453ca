package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finite-collective/docdesk/internal/config"
	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
)

var (
	writePath    string
	writeContent string
	writeFile    string
	writeAuthor  string
	writeMeta    []string
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write",
	Short: "Write a document",
	Long:  `Create or update a document through the file-service. Content comes from --content or from a local file with --file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if writeContent != "" && writeFile != "" {
			fmt.Println("Error: --content and --file are mutually exclusive")
			cmd.Usage()
			os.Exit(1)
		}

		content := writeContent
		if writeFile != "" {
			data, err := os.ReadFile(writeFile)
			if err != nil {
				fatal("Failed to read content file", err)
			}
			content = string(data)
		}

		meta := docs.Metadata{}
		if writeAuthor != "" {
			meta[docs.MetaAuthor] = writeAuthor
		}
		for _, pair := range writeMeta {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				fmt.Printf("Error: --meta expects key=value, got %q\n", pair)
				os.Exit(1)
			}
			meta[k] = v
		}

		cfg := config.Load()
		c := client.New(cfg.ServiceURL, client.WithLogger(slog.Default()))

		result, err := c.SaveDocument(cmd.Context(), writePath, content, meta)
		if err != nil {
			fatal("Failed to save document", err)
		}

		fmt.Printf("Document '%s' saved.\n", result.Path)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writePath, "path", "", "Document path (root-relative)")
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Document content")
	writeCmd.Flags().StringVarP(&writeFile, "file", "f", "", "Read content from a local file")
	writeCmd.Flags().StringVar(&writeAuthor, "author", "", "Author to record in the sidecar metadata")
	writeCmd.Flags().StringArrayVar(&writeMeta, "meta", nil, "Extra sidecar metadata as key=value (repeatable)")
	writeCmd.MarkFlagRequired("path")
}
