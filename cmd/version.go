package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/stencilbench/internal/stencil"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "stencilbench version %s (lanes: %d, %s)\n",
			version, stencil.PreferredLaneWidth(), stencil.ActiveLaneBackend)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
