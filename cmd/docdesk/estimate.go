package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/finite-collective/docdesk/pkg/docs"
)

var estimateCmd = &cobra.Command{
	Use:   "estimate [file]",
	Short: "Estimate the reading time of a local Markdown file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Failed to read file", err)
		}
		fmt.Println(docs.EstimateReadingTime(string(data)))
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
}
