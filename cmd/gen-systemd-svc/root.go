package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cgspeck/gen-systemd-svcs/internal/cli"
)

var rootCmd = &cobra.Command{
	Use:   "gen-systemd-svc FILE OUTPUT_DIRECTORY",
	Short: "Generate systemd service units from a YAML definition",
	Long: `gen-systemd-svc reads a definition file of templates and instances and writes
one {name}.service file per instance into OUTPUT_DIRECTORY.

Instances inherit the Requires, After and Wants lists of their template unless
told otherwise, override Service fields one by one and replace Install as a
whole.`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		createDir, _ := cmd.Flags().GetBool("create-dir")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")

		ctx, stop := signalContext()
		defer stop()

		return cli.Generate(ctx, cli.GenerateOptions{
			CommonOptions: commonOptions(cmd, args[0]),
			OutputDir:     args[1],
			CreateDir:     createDir,
			Workers:       workers,
			MetricsFile:   metricsFile,
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().Bool("strict", false, "Reject unknown keys in the definition file")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress logs and the run summary")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format (text or json)")

	rootCmd.Flags().IntP("workers", "j", 1, "Number of units written concurrently")
	rootCmd.Flags().Bool("create-dir", false, "Create OUTPUT_DIRECTORY if it does not exist")
	rootCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this path")
}

func commonOptions(cmd *cobra.Command, path string) cli.CommonOptions {
	strict, _ := cmd.Flags().GetBool("strict")
	debug, _ := cmd.Flags().GetBool("debug")
	quiet, _ := cmd.Flags().GetBool("quiet")
	logFormat, _ := cmd.Flags().GetString("log-format")
	return cli.CommonOptions{
		DefinitionPath: path,
		Strict:         strict,
		Debug:          debug,
		Quiet:          quiet,
		LogFormat:      logFormat,
		Stdout:         cmd.OutOrStdout(),
		Stderr:         cmd.ErrOrStderr(),
	}
}

// signalContext is cancelled on SIGINT or SIGTERM so in-flight writes can finish.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
