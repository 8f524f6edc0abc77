// Package gate provides the rendezvous used to pace compiled scripts one statement per tick.
package gate

import (
	"context"
	"sync/atomic"
)

// StepGate is a single-slot signalling channel between the tick goroutine, which calls
// Pulse, and one script worker goroutine, which calls Await between statements.
//
// At most one pulse is ever outstanding: a pulse sent while the worker is busy is kept
// and releases the next Await immediately, further pulses are dropped until it is consumed.
type StepGate struct {
	slot      chan struct{}
	delivered atomic.Uint64
	dropped   atomic.Uint64
}

// New returns a closed gate.
func New() *StepGate {
	return &StepGate{slot: make(chan struct{}, 1)}
}

// Pulse releases the current or next waiter. It never blocks.
func (g *StepGate) Pulse() {
	select {
	case g.slot <- struct{}{}:
	default:
		g.dropped.Add(1)
	}
}

// Await blocks until a pulse is available or ctx is done.
func (g *StepGate) Await(ctx context.Context) error {
	select {
	case <-g.slot:
		g.delivered.Add(1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Delivered returns the number of pulses consumed by Await.
func (g *StepGate) Delivered() uint64 {
	return g.delivered.Load()
}

// Dropped returns the number of pulses discarded because one was already outstanding.
func (g *StepGate) Dropped() uint64 {
	return g.dropped.Load()
}
