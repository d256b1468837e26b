package main

import (
	"github.com/spf13/cobra"

	"github.com/cgspeck/gen-systemd-svcs/internal/cli"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph FILE",
	Short: "Export the unit dependency graph",
	Long:  `Resolves every instance and outputs a Mermaid diagram (graph TD) of its Requires, After and Wants edges.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Graph(commonOptions(cmd, args[0]))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
