package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cgspeck/gen-systemd-svcs/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a definition file without writing anything",
	Long:  `Decodes the definition, applies defaults and reports every missing field, invalid value and duplicate instance name.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := cli.Validate(commonOptions(cmd, args[0]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Definition is valid: %d groups, %d instances ✅\n",
			len(def.Groups), len(def.Instances()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
