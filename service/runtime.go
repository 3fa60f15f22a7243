// Package service orchestrates a single turtle-program run shared by
// the CLI, TUI, GUI, and HTTP front ends: reentrancy guard, speed
// control, and the one-worker pool that actually executes programs.
package service

import (
	"sync"
	"sync/atomic"

	"github.com/andycking/turtlego/render"
	"github.com/andycking/turtlego/runtime"
)

// Runtime is a process-wide (per-instance) orchestrator. Not
// reentrant: Go drops a request if a run is already in progress.
type Runtime struct {
	running atomic.Bool
	speed   atomic.Uint32

	minSpeed uint32
	maxSpeed uint32

	maxRenderCommands uint64

	outMu  sync.RWMutex
	output string
	failed bool

	sink *render.ChanSink
	jobs chan string
}

// New returns a Runtime with a fresh sink and a persistent worker
// goroutine, matching a single-worker thread pool taken from the
// config's execution settings. maxRenderCommands caps the number of
// render commands a single run may emit (0 = unlimited), aborting a
// runaway program.
func New(sinkBuffer int, defaultSpeed, minSpeed, maxSpeed uint32, maxRenderCommands uint64) *Runtime {
	rt := &Runtime{
		minSpeed:          minSpeed,
		maxSpeed:          maxSpeed,
		maxRenderCommands: maxRenderCommands,
		sink:              render.NewChanSink(sinkBuffer),
		jobs:              make(chan string),
	}
	rt.speed.Store(clampSpeed(defaultSpeed, minSpeed, maxSpeed))
	go rt.worker()
	return rt
}

func (rt *Runtime) worker() {
	for source := range rt.jobs {
		v, err := runtime.Entry(source, rt.sink, rt.maxRenderCommands)

		var out string
		if err != nil {
			out = err.Error()
			serviceLog.Printf("run failed: %v", err)
		} else {
			out = v.String()
		}

		rt.outMu.Lock()
		rt.output = out
		rt.failed = err != nil
		rt.outMu.Unlock()

		rt.running.Store(false)
	}
}

// Go submits source for execution. It reports false without scheduling
// anything if a run is already in progress — pressing "Go" during a
// run has no effect.
func (rt *Runtime) Go(source string) bool {
	if !rt.running.CompareAndSwap(false, true) {
		serviceLog.Printf("Go: run already in progress, dropping request")
		return false
	}
	rt.jobs <- source
	return true
}

// Running reports whether a run is currently in progress.
func (rt *Runtime) Running() bool {
	return rt.running.Load()
}

// Sink is the render-command source the consumer drains.
func (rt *Runtime) Sink() *render.ChanSink {
	return rt.sink
}

// Speed returns the current pacing value.
func (rt *Runtime) Speed() uint32 {
	return rt.speed.Load()
}

// SetSpeed clamps and stores a new pacing value.
func (rt *Runtime) SetSpeed(v uint32) {
	rt.speed.Store(clampSpeed(v, rt.minSpeed, rt.maxSpeed))
}

// DoubleSpeed doubles the current pacing value, clamped to MaxSpeed.
func (rt *Runtime) DoubleSpeed() {
	for {
		cur := rt.speed.Load()
		next := clampSpeed(cur*2, rt.minSpeed, rt.maxSpeed)
		if rt.speed.CompareAndSwap(cur, next) {
			return
		}
	}
}

// HalveSpeed halves the current pacing value, clamped to MinSpeed.
func (rt *Runtime) HalveSpeed() {
	for {
		cur := rt.speed.Load()
		next := clampSpeed(cur/2, rt.minSpeed, rt.maxSpeed)
		if rt.speed.CompareAndSwap(cur, next) {
			return
		}
	}
}

// Output returns the output slot's current text: the last run's
// returned value on success, or its error message on failure.
func (rt *Runtime) Output() string {
	rt.outMu.RLock()
	defer rt.outMu.RUnlock()
	return rt.output
}

// Failed reports whether the last completed run ended in error.
func (rt *Runtime) Failed() bool {
	rt.outMu.RLock()
	defer rt.outMu.RUnlock()
	return rt.failed
}

func clampSpeed(v, min, max uint32) uint32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
