package model

import (
	"errors"
	"fmt"
)

// ErrUnitNotFound is returned by sinks when no descriptor exists under a name.
var ErrUnitNotFound = errors.New("unit not found")

// DecodeError reports malformed or incomplete input at a given path.
type DecodeError struct {
	Path   string // e.g. "defs[0].instances[1].Unit.Name"
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	if e.Path == "" {
		return "decode: " + msg
	}
	return fmt.Sprintf("decode %s: %s", e.Path, msg)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IOError reports a failure to read the definition or write a descriptor.
type IOError struct {
	Op       string // "read" or "write"
	Path     string
	Instance string // empty for input reads
	Err      error
}

func (e *IOError) Error() string {
	if e.Instance != "" {
		return fmt.Sprintf("%s %s (instance %q): %v", e.Op, e.Path, e.Instance, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NameCollisionError reports two instances that would write the same file.
type NameCollisionError struct {
	Name   string
	First  string // path of the first declaration
	Second string // path of the colliding declaration
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf("instance name %q declared at %s collides with %s", e.Name, e.Second, e.First)
}
