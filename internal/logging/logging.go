// Package logging provides the process-wide structured logger used by
// the scheduler's single-failure isolation and the chunk streamer,
// replacing the teacher's bare log.Printf call sites with zap's
// structured fields (subsystem, tick, error).
package logging

import (
	"sync"

	"go.uber.org/zap"
)

var (
	mu     sync.RWMutex
	logger *zap.Logger
)

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		l = zap.NewNop()
	}
	logger = l
}

// Set replaces the process-wide logger, e.g. with zap.NewDevelopment() in
// cmd/voxelcore-demo or a zap.NewNop() in tests.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

// L returns the current process-wide logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// HandlerFailure logs a handler failure (a recovered panic or a returned
// error, passed as recovered) with the subsystem name
// and tick number, matching the scheduler's single-failure-isolation
// contract (§4.7): the handler is permanently replaced with a no-op after
// this is logged.
func HandlerFailure(subsystem string, tick uint64, recovered interface{}) {
	L().Error("handler failed; disabling",
		zap.String("subsystem", subsystem),
		zap.Uint64("tick", tick),
		zap.Any("panic", recovered),
	)
}

// StreamError logs a chunk streamer worker failure (load or mesh).
func StreamError(stage string, err error) {
	L().Error("chunk streamer error", zap.String("stage", stage), zap.Error(err))
}
