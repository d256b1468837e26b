package cli

import (
	"context"
	"io"
	"log/slog"

	gensvc "github.com/cgspeck/gen-systemd-svcs"
	"github.com/cgspeck/gen-systemd-svcs/internal/logging"
	"github.com/cgspeck/gen-systemd-svcs/internal/metrics"
	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// CommonOptions are shared by every command that reads a definition file.
type CommonOptions struct {
	DefinitionPath string
	Strict         bool
	Debug          bool
	Quiet          bool
	LogFormat      string
	Stdout         io.Writer
	Stderr         io.Writer
}

// createLogger configures the application logger.
// Logs go to Stderr so Stdout stays clean for render/graph output.
func createLogger(opts CommonOptions) (*slog.Logger, error) {
	if opts.Quiet {
		return logging.NewNop(), nil
	}
	format := logging.FormatText
	if opts.LogFormat != "" {
		f, err := logging.ParseFormat(opts.LogFormat)
		if err != nil {
			return nil, err
		}
		format = f
	}
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	return logging.New(opts.Stderr, level, format), nil
}

// loadDefinition parses the definition file and checks instance names
// across all groups.
func loadDefinition(opts CommonOptions, logger *slog.Logger) (*model.DefinitionFile, error) {
	def, err := model.ParseFile(opts.DefinitionPath, model.WithStrict(opts.Strict))
	if err != nil {
		return nil, err
	}
	if err := model.CheckCollisions(def); err != nil {
		return nil, err
	}
	logger.Debug("definition loaded",
		"path", opts.DefinitionPath,
		"groups", len(def.Groups),
		"instances", len(def.Instances()),
	)
	return def, nil
}

// createHooks records metrics for every unit when a recorder is given.
func createHooks(logger *slog.Logger, recorder *metrics.Recorder, sinkLabel string) gensvc.LifecycleHooks {
	hooks := gensvc.LifecycleHooks{
		OnRunComplete: func(ctx context.Context, e *gensvc.RunEvent) {
			logger.Debug("run complete", "written", e.Written, "failed", e.Failed)
			if recorder != nil {
				recorder.ObserveRun(e.Duration)
			}
		},
	}
	if recorder != nil {
		hooks.OnUnitWritten = func(ctx context.Context, e *gensvc.UnitEvent) {
			recorder.Generated(sinkLabel)
		}
		hooks.OnUnitFailed = func(ctx context.Context, e *gensvc.UnitEvent) {
			recorder.Failed(sinkLabel)
		}
	}
	return hooks
}

func withDefaults(opts CommonOptions, stdout, stderr io.Writer) CommonOptions {
	if opts.Stdout == nil {
		opts.Stdout = stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = stderr
	}
	return opts
}

func writeMetrics(recorder *metrics.Recorder, path string, logger *slog.Logger) error {
	if recorder == nil || path == "" {
		return nil
	}
	if err := recorder.WriteTextfile(path); err != nil {
		return err
	}
	logger.Debug("metrics written", "path", path)
	return nil
}
