package gensvc

import (
	"context"
	"time"
)

// UnitEvent describes the outcome of one instance.
type UnitEvent struct {
	Timestamp time.Time
	Name      string // instance name
	Location  string // where the descriptor went
	Err       error  // set when the write failed
}

// RunEvent summarises a whole Generate call.
type RunEvent struct {
	Timestamp time.Time
	Written   int
	Failed    int
	Duration  time.Duration
}

// LifecycleHooks defines callbacks for generator observability.
// Unit hooks may be called concurrently when more than one worker is used.
type LifecycleHooks struct {
	OnUnitWritten func(context.Context, *UnitEvent)
	OnUnitFailed  func(context.Context, *UnitEvent)
	OnRunComplete func(context.Context, *RunEvent)
}
