package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	gensvc "github.com/cgspeck/gen-systemd-svcs"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gen-systemd-svc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "gen-systemd-svc version %s\n", strings.TrimSpace(gensvc.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
