package main

import (
	"github.com/spf13/cobra"

	"github.com/cgspeck/gen-systemd-svcs/internal/cli"
	"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/redis"
)

var publishCmd = &cobra.Command{
	Use:   "publish FILE",
	Short: "Write the resolved units into a Redis hash",
	Long: `Resolves every instance and stores its unit text in a Redis hash, keyed by
file name, so remote hosts can fetch their units instead of copying files.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("redis-addr")
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		key, _ := cmd.Flags().GetString("redis-key")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		workers, _ := cmd.Flags().GetInt("workers")
		metricsFile, _ := cmd.Flags().GetString("metrics-file")

		ctx, stop := signalContext()
		defer stop()

		return cli.Publish(ctx, cli.PublishOptions{
			CommonOptions: commonOptions(cmd, args[0]),
			RedisAddr:     addr,
			RedisPassword: password,
			RedisDB:       db,
			RedisKey:      key,
			TTL:           ttl,
			Workers:       workers,
			MetricsFile:   metricsFile,
		})
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().String("redis-addr", "localhost:6379", "Redis server address")
	publishCmd.Flags().String("redis-password", "", "Redis password")
	publishCmd.Flags().Int("redis-db", 0, "Redis database number")
	publishCmd.Flags().String("redis-key", redis.DefaultKey, "Hash key holding the units")
	publishCmd.Flags().Duration("ttl", 0, "Expire the hash after this duration (0 keeps it)")
	publishCmd.Flags().IntP("workers", "j", 1, "Number of units written concurrently")
	publishCmd.Flags().String("metrics-file", "", "Write Prometheus metrics in textfile format to this path")
}
