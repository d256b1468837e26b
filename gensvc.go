package gensvc

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/cgspeck/gen-systemd-svcs/pkg/adapters/memory"
	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
	"github.com/cgspeck/gen-systemd-svcs/pkg/ports"
	"github.com/cgspeck/gen-systemd-svcs/pkg/resolver"
)

// Generator resolves every instance of a definition and writes the
// descriptors to a sink.
type Generator struct {
	sink    ports.UnitSink
	logger  *slog.Logger
	workers int
	hooks   LifecycleHooks
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithSink sets where descriptors are written (default: in memory).
func WithSink(sink ports.UnitSink) Option {
	return func(g *Generator) {
		g.sink = sink
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithWorkers sets how many instances are resolved and written at once (default 1).
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{workers: 1}
	for _, opt := range opts {
		opt(g)
	}

	if g.sink == nil {
		g.sink = memory.NewSink()
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if g.workers < 1 {
		g.workers = 1
	}
	return g
}

// Sink returns the sink descriptors are written to.
func (g *Generator) Sink() ports.UnitSink {
	return g.sink
}

// UnitResult is the outcome for one instance.
type UnitResult struct {
	Name     string
	Location string
	Err      error
}

// Report lists every instance of a run in declaration order.
type Report struct {
	Units    []UnitResult
	Duration time.Duration
}

// Written returns the instances whose descriptor was written.
func (r *Report) Written() []UnitResult {
	return r.filter(false)
}

// Failed returns the instances whose descriptor could not be written.
func (r *Report) Failed() []UnitResult {
	return r.filter(true)
}

func (r *Report) filter(failed bool) []UnitResult {
	var out []UnitResult
	for _, u := range r.Units {
		if (u.Err != nil) == failed {
			out = append(out, u)
		}
	}
	return out
}

type job struct {
	index    int
	instance model.Instance
	template model.Template
}

// Generate writes one descriptor per instance of def.
//
// Name collisions are reported before anything is written. A failed write
// does not stop the other instances: every failure is returned together as
// *model.IOError values, alongside a report covering all instances.
func (g *Generator) Generate(ctx context.Context, def *model.DefinitionFile) (*Report, error) {
	if err := model.CheckCollisions(def); err != nil {
		return nil, err
	}

	start := time.Now()
	var jobs []job
	for _, group := range def.Groups {
		for _, inst := range group.Instances {
			jobs = append(jobs, job{index: len(jobs), instance: inst, template: group.Template})
		}
	}

	report := &Report{Units: make([]UnitResult, len(jobs))}
	var (
		mu     sync.Mutex
		result *multierror.Error
	)

	var eg errgroup.Group
	eg.SetLimit(g.workers)
	for _, j := range jobs {
		j := j
		eg.Go(func() error {
			res := g.generateOne(ctx, j)
			report.Units[j.index] = res
			if res.Err != nil {
				mu.Lock()
				result = multierror.Append(result, res.Err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = eg.Wait()

	report.Duration = time.Since(start)
	written, failed := len(report.Written()), len(report.Failed())
	g.logger.Info("generation complete",
		"written", written,
		"failed", failed,
		"duration", report.Duration,
	)
	if g.hooks.OnRunComplete != nil {
		g.hooks.OnRunComplete(ctx, &RunEvent{
			Timestamp: time.Now(),
			Written:   written,
			Failed:    failed,
			Duration:  report.Duration,
		})
	}

	return report, result.ErrorOrNil()
}

func (g *Generator) generateOne(ctx context.Context, j job) UnitResult {
	name := j.instance.Name()
	fileName := j.instance.FileName()
	res := UnitResult{Name: name, Location: g.sink.Location(fileName)}

	g.logger.Debug("generating unit", "name", name)
	content := resolver.Resolve(j.instance, j.template)

	if err := g.sink.Write(ctx, fileName, []byte(content)); err != nil {
		res.Err = &model.IOError{Op: "write", Path: res.Location, Instance: name, Err: err}
		g.logger.Error("failed to write unit", "name", name, "path", res.Location, "error", err)
		if g.hooks.OnUnitFailed != nil {
			g.hooks.OnUnitFailed(ctx, &UnitEvent{Timestamp: time.Now(), Name: name, Location: res.Location, Err: res.Err})
		}
		return res
	}

	g.logger.Info("wrote unit", "name", name, "path", res.Location)
	if g.hooks.OnUnitWritten != nil {
		g.hooks.OnUnitWritten(ctx, &UnitEvent{Timestamp: time.Now(), Name: name, Location: res.Location})
	}
	return res
}

// Render returns the descriptor for the instance called name.
func Render(def *model.DefinitionFile, name string) (string, error) {
	for _, group := range def.Groups {
		for _, inst := range group.Instances {
			if inst.Name() == name {
				return resolver.Resolve(inst, group.Template), nil
			}
		}
	}
	return "", fmt.Errorf("instance %q: %w", name, model.ErrUnitNotFound)
}
