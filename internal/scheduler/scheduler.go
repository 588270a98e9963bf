// Package scheduler drives the two clocks a running voxelcore frontend
// needs: a fixed-timestep update at TicksPerSecond, and a render callback
// driven once per call to Frame (by the host's display refresh). It is
// grounded on the teacher's App.tick/FPSLimiter pair in internal/game,
// reworked into the accumulator shape spec.md names so it can be unit
// tested without a GLFW window.
package scheduler

import (
	"time"

	"voxelcore/internal/logging"
)

const (
	defaultTicksPerSecond = 30
	// TicksPerFrame bounds how many update ticks a single Frame call may
	// run to catch up after a stall, independent of TicksPerSecond.
	ticksPerFrame = 5
)

// Handler is a single update or render callback. It returns an error
// rather than panicking where possible; Scheduler also recovers an actual
// panic and treats it the same way.
type Handler func(dt float64) error

// Scheduler runs a fixed-timestep update handler and a render handler,
// isolating either from the other's failures: an update or render handler
// that panics or returns an error is logged once and permanently replaced
// with a no-op, rather than taking down the whole loop.
type Scheduler struct {
	ticksPerSecond int
	updateHandler  Handler
	renderHandler  Handler

	accumulator time.Duration
	lastFrame   time.Time
	tick        uint64

	updateDisabled bool
	renderDisabled bool
}

// New returns a Scheduler at the default 30 ticks/second. Call SetHandlers
// before the first Frame.
func New() *Scheduler {
	return &Scheduler{ticksPerSecond: defaultTicksPerSecond}
}

// SetTicksPerSecond overrides the fixed update rate.
func (s *Scheduler) SetTicksPerSecond(tps int) {
	if tps > 0 {
		s.ticksPerSecond = tps
	}
}

// SetHandlers installs the update and render callbacks.
func (s *Scheduler) SetHandlers(update, render Handler) {
	s.updateHandler = update
	s.renderHandler = render
}

// Frame advances the scheduler by one display-refresh tick: it runs as
// many fixed-timestep updates as the elapsed wall-clock time demands
// (bounded by updateLimit = updateDelay * TicksPerFrame), then runs the
// render handler exactly once.
func (s *Scheduler) Frame() {
	now := time.Now()
	if s.lastFrame.IsZero() {
		s.lastFrame = now
	}
	elapsed := now.Sub(s.lastFrame)
	s.lastFrame = now

	updateDelay := time.Second / time.Duration(s.ticksPerSecond)
	updateLimit := updateDelay * ticksPerFrame

	s.accumulator += elapsed
	if s.accumulator > updateLimit {
		s.accumulator = updateLimit
	}

	for s.accumulator >= updateDelay {
		s.runUpdate(updateDelay.Seconds())
		s.accumulator -= updateDelay
		s.tick++
	}

	s.runRender(elapsed.Seconds())
}

func (s *Scheduler) runUpdate(dt float64) {
	if s.updateDisabled || s.updateHandler == nil {
		return
	}
	if err := s.guard("update", s.updateHandler, dt); err != nil {
		s.updateDisabled = true
	}
}

func (s *Scheduler) runRender(dt float64) {
	if s.renderDisabled || s.renderHandler == nil {
		return
	}
	if err := s.guard("render", s.renderHandler, dt); err != nil {
		s.renderDisabled = true
	}
}

// guard runs h, converting both a returned error and a recovered panic
// into a logged failure; either one disables the handler for the caller.
func (s *Scheduler) guard(name string, h Handler, dt float64) (failure error) {
	defer func() {
		if r := recover(); r != nil {
			logging.HandlerFailure(name, s.tick, r)
			failure = errHandlerPanicked
		}
	}()

	if err := h(dt); err != nil {
		logging.HandlerFailure(name, s.tick, err)
		return err
	}
	return nil
}

type schedulerError string

func (e schedulerError) Error() string { return string(e) }

const errHandlerPanicked = schedulerError("handler panicked")

// Tick returns the number of update ticks run so far.
func (s *Scheduler) Tick() uint64 { return s.tick }
