package main

import (
	"fmt"

	"github.com/finite-collective/docdesk"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of docdesk",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docdesk version %s\n", docdesk.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
