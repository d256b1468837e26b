/*
Package ports defines the driven ports of the generator.

# Key Interfaces

  - UnitSink: Receives rendered descriptors (directory, memory, Redis).
*/
package ports

import "context"

// UnitSink defines where rendered service descriptors are delivered.
// Implementations must be safe for concurrent use by distinct names.
type UnitSink interface {
	// Write stores content under name (e.g. "foo.service"), replacing any previous content.
	Write(ctx context.Context, name string, content []byte) error

	// Read returns the content stored under name.
	// Returns model.ErrUnitNotFound if nothing was written under that name.
	Read(ctx context.Context, name string) ([]byte, error)

	// List returns the names of every stored descriptor, sorted.
	List(ctx context.Context) ([]string, error)

	// Location describes where name is stored, for logs and error messages.
	Location(name string) string
}
