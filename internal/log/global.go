package log

import (
	"sync/atomic"
)

// defaultLogger is swapped once at startup after configuration is
// loaded, then read on every command log call.
var defaultLogger atomic.Pointer[Logger]

// SetDefaultLogger replaces the process-wide default logger.
func SetDefaultLogger(logger *Logger) {
	defaultLogger.Store(logger)
}

// DefaultLogger returns the process-wide default logger, creating one
// with standard defaults on first use.
func DefaultLogger() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	defaultLogger.CompareAndSwap(nil, Default())
	return defaultLogger.Load()
}
