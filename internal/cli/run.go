package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"

	gensvc "github.com/cgspeck/gen-systemd-svcs"
	"github.com/cgspeck/gen-systemd-svcs/internal/metrics"
	"github.com/cgspeck/gen-systemd-svcs/internal/presentation/tui"
	"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/file"
	"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/redis"
	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	"github.com/cgspeck/gen-systemd-svcs/pkg/ports"
)

// GenerateOptions contains the configuration for the generate (root) command.
type GenerateOptions struct {
	CommonOptions
	OutputDir   string
	CreateDir   bool
	Workers     int
	MetricsFile string
}

// PublishOptions contains the configuration for the publish command.
type PublishOptions struct {
	CommonOptions
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
	TTL           time.Duration
	Workers       int
	MetricsFile   string
}

// Generate writes one descriptor per instance into the output directory.
// The definition must decode completely before anything is written.
func Generate(ctx context.Context, opts GenerateOptions) error {
	opts.CommonOptions = withDefaults(opts.CommonOptions, os.Stdout, os.Stderr)
	logger, err := createLogger(opts.CommonOptions)
	if err != nil {
		return err
	}

	def, err := loadDefinition(opts.CommonOptions, logger)
	if err != nil {
		return err
	}

	sink := file.New(opts.OutputDir, file.WithCreateDir(opts.CreateDir))
	if err := sink.Check(); err != nil {
		return &model.IOError{Op: "write", Path: opts.OutputDir, Err: err}
	}

	return run(ctx, opts.CommonOptions, logger, def, sink, "file", opts.Workers, opts.MetricsFile)
}

// Publish writes one descriptor per instance into a Redis hash.
func Publish(ctx context.Context, opts PublishOptions) error {
	opts.CommonOptions = withDefaults(opts.CommonOptions, os.Stdout, os.Stderr)
	logger, err := createLogger(opts.CommonOptions)
	if err != nil {
		return err
	}

	def, err := loadDefinition(opts.CommonOptions, logger)
	if err != nil {
		return err
	}

	sinkOpts := []redis.Option{redis.WithTTL(opts.TTL)}
	if opts.RedisKey != "" {
		sinkOpts = append(sinkOpts, redis.WithKey(opts.RedisKey))
	}
	sink := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, sinkOpts...)
	defer sink.Close()

	if err := sink.Ping(ctx); err != nil {
		return &model.IOError{Op: "write", Path: opts.RedisAddr, Err: err}
	}

	return run(ctx, opts.CommonOptions, logger, def, sink, "redis", opts.Workers, opts.MetricsFile)
}

func run(ctx context.Context, opts CommonOptions, logger *slog.Logger, def *model.DefinitionFile, sink ports.UnitSink, label string, workers int, metricsFile string) error {
	var recorder *metrics.Recorder
	if metricsFile != "" {
		recorder = metrics.New()
	}

	gen := gensvc.New(
		gensvc.WithSink(sink),
		gensvc.WithLogger(logger),
		gensvc.WithWorkers(workers),
		gensvc.WithLifecycleHooks(createHooks(logger, recorder, label)),
	)

	report, genErr := gen.Generate(ctx, def)
	if report != nil && !opts.Quiet {
		tui.PrintSummary(opts.Stdout, report)
	}

	var result *multierror.Error
	if genErr != nil {
		result = multierror.Append(result, genErr)
	}
	if err := writeMetrics(recorder, metricsFile, logger); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
