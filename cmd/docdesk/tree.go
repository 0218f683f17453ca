package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finite-collective/docdesk/internal/config"
	"github.com/finite-collective/docdesk/pkg/client"
	"github.com/finite-collective/docdesk/pkg/docs"
)

var treeJSON bool

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the documentation tree",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		c := client.New(cfg.ServiceURL, client.WithLogger(slog.Default()))

		nodes, offline := c.FetchTree(cmd.Context())
		if offline {
			fmt.Fprintln(os.Stderr, "Warning: file-service unreachable, showing fallback tree")
		}

		if treeJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(nodes); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		var print func(nodes []*docs.Node, depth int)
		print = func(nodes []*docs.Node, depth int) {
			for _, node := range nodes {
				indent := strings.Repeat("  ", depth)
				if node.IsFolder() {
					fmt.Printf("%s%s/\n", indent, node.Name)
					print(node.Children, depth+1)
					continue
				}
				line := indent + node.Name
				if author := node.Metadata.Author(); author != "" {
					line += " (" + author + ")"
				}
				fmt.Println(line)
			}
		}
		print(nodes, 0)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "Output in JSON format")
}
