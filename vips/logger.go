package vips

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/vips-runtime/internal/ffi"
)

var (
	logger   *zap.Logger
	loggerMu sync.RWMutex
)

// Logger returns the package logger. It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	l := logger
	loggerMu.RUnlock()
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// SetLogger sets the logger used for image lifecycle and native call events.
// The call emitter logs through a child named "ffi".
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
	if l != nil {
		ffi.SetLogger(l.Named("ffi"))
	} else {
		ffi.SetLogger(nil)
	}
}
