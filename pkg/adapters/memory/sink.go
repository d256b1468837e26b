package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cgspeck/gen-systemd-svcs/pkg/model"
)

// Sink implements ports.UnitSink in memory.
// Safe for concurrent use.
type Sink struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewSink creates an empty in-memory sink.
func NewSink() *Sink {
	return &Sink{
		data: make(map[string][]byte),
	}
}

// Write stores a copy of content.
func (s *Sink) Write(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copied := append([]byte(nil), content...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Read returns a copy so callers cannot mutate stored content.
func (s *Sink) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.data[name]
	if !ok {
		return nil, model.ErrUnitNotFound
	}
	return append([]byte(nil), content...), nil
}

// List returns all stored names, sorted.
func (s *Sink) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Location returns a memory:// pseudo path.
func (s *Sink) Location(name string) string {
	return "memory://" + name
}
