package main

import (
	"github.com/spf13/cobra"

	"github.com/cgspeck/gen-systemd-svcs/internal/cli"
)

// renderCmd prints a single resolved unit to stdout
var renderCmd = &cobra.Command{
	Use:   "render FILE NAME",
	Short: "Print the resolved unit of one instance",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Render(commonOptions(cmd, args[0]), args[1])
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
