package scheduler

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"voxelcore/internal/logging"
)

func init() {
	logging.Set(zap.NewNop())
}

func TestFrameRunsUpdateAndRender(t *testing.T) {
	s := New()
	s.SetTicksPerSecond(1000) // 1ms ticks, so the 5ms sleep yields at least one

	var updates, renders int
	s.SetHandlers(
		func(dt float64) error { updates++; return nil },
		func(dt float64) error { renders++; return nil },
	)

	s.Frame()
	time.Sleep(5 * time.Millisecond)
	s.Frame()

	if renders != 2 {
		t.Fatalf("expected render to run once per Frame call, got %d", renders)
	}
	if updates == 0 {
		t.Fatal("expected at least one update tick across two frames")
	}
}

func TestUpdateFailureDisablesUpdateOnly(t *testing.T) {
	s := New()
	s.SetTicksPerSecond(1000)

	var renders int
	s.SetHandlers(
		func(dt float64) error { return errors.New("boom") },
		func(dt float64) error { renders++; return nil },
	)

	s.Frame()
	time.Sleep(5 * time.Millisecond)
	s.Frame()

	if !s.updateDisabled {
		t.Fatal("expected update handler to be disabled after returning an error")
	}
	if renders != 2 {
		t.Fatalf("expected render to keep running after update failed, got %d", renders)
	}
}

func TestUpdatePanicIsIsolated(t *testing.T) {
	s := New()
	s.SetTicksPerSecond(1000)

	s.SetHandlers(
		func(dt float64) error { panic("kaboom") },
		func(dt float64) error { return nil },
	)

	s.Frame()
	time.Sleep(5 * time.Millisecond)
	s.Frame()

	if !s.updateDisabled {
		t.Fatal("expected a panicking update handler to be disabled, not crash the scheduler")
	}
}

func TestCatchUpIsBoundedByUpdateLimit(t *testing.T) {
	s := New()
	s.SetTicksPerSecond(1000) // updateDelay = 1ms, updateLimit = 5ms

	var updates int
	s.SetHandlers(
		func(dt float64) error { updates++; return nil },
		func(dt float64) error { return nil },
	)

	s.Frame()
	time.Sleep(100 * time.Millisecond) // a huge stall
	s.Frame()

	if updates > ticksPerFrame {
		t.Fatalf("expected catch-up bounded to %d ticks, got %d", ticksPerFrame, updates)
	}
}
