package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// Sink implements ports.UnitSink on a local output directory.
type Sink struct {
	Dir       string
	mode      fs.FileMode
	createDir bool
}

type Option func(*Sink)

// WithCreateDir creates the output directory (and parents) on first write.
func WithCreateDir(create bool) Option {
	return func(s *Sink) {
		s.createDir = create
	}
}

// WithFileMode sets the permissions of written descriptors (default 0644).
func WithFileMode(mode fs.FileMode) Option {
	return func(s *Sink) {
		s.mode = mode
	}
}

// New creates a Sink writing into dir.
func New(dir string, opts ...Option) *Sink {
	s := &Sink{Dir: dir, mode: 0o644}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the file path name is written to.
func (s *Sink) Location(name string) string {
	return filepath.Join(s.Dir, name)
}

// Check verifies that the output directory exists (or may be created) and is a directory.
func (s *Sink) Check() error {
	info, err := os.Stat(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && s.createDir {
			return nil
		}
		return fmt.Errorf("output directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", s.Dir)
	}
	return nil
}

// Write replaces the file atomically: content goes to a temp file in the
// same directory which is then renamed over the target.
func (s *Sink) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid descriptor name %q", name)
	}

	if s.createDir {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to ensure output directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	if err := tmp.Chmod(s.mode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set descriptor mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close descriptor: %w", err)
	}
	if err := os.Rename(tmpName, s.Location(name)); err != nil {
		return fmt.Errorf("failed to move descriptor into place: %w", err)
	}
	return nil
}

// Read returns the content of a previously written descriptor.
func (s *Sink) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.Location(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	return data, nil
}

// List returns every *.service file in the directory.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list descriptors: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".service" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
