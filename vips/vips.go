package vips

/*
#cgo pkg-config: vips
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"strings"
	"sync"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/vips-runtime/errors"
)

// Config holds library-wide settings applied by Startup. Negative values
// leave the libvips default in place.
type Config struct {
	// Concurrency sets the worker thread count per pipeline. 0 picks one
	// thread per core.
	Concurrency int

	// CacheMaxOps bounds the operation cache. 0 disables caching, which
	// makes image finalization (and buffer release) happen on Close.
	CacheMaxOps int

	// CacheMaxMem bounds the memory held by cached operations, in bytes.
	CacheMaxMem int64

	// LeakCheck makes libvips report leaked objects at shutdown.
	LeakCheck bool
}

// NewConfig returns a Config that keeps every libvips default.
func NewConfig() *Config {
	return &Config{Concurrency: -1, CacheMaxOps: -1, CacheMaxMem: -1}
}

// WithConcurrency sets the worker thread count.
func (c *Config) WithConcurrency(n int) *Config {
	c.Concurrency = n
	return c
}

// WithCacheMaxOps sets the operation cache size.
func (c *Config) WithCacheMaxOps(n int) *Config {
	c.CacheMaxOps = n
	return c
}

// WithCacheMaxMem sets the operation cache memory bound.
func (c *Config) WithCacheMaxMem(n int64) *Config {
	c.CacheMaxMem = n
	return c
}

// WithLeakCheck enables leak reporting.
func (c *Config) WithLeakCheck(on bool) *Config {
	c.LeakCheck = on
	return c
}

var (
	startMu  sync.Mutex
	started  bool
	shutdown bool
)

// Startup initializes libvips and applies cfg (nil keeps the defaults). It is
// safe to call more than once; later calls only reapply the configuration.
// libvips cannot be restarted after Shutdown.
func Startup(cfg *Config) error {
	startMu.Lock()
	defer startMu.Unlock()

	if shutdown {
		return errors.Startup("libvips cannot be restarted after Shutdown", nil)
	}
	if !started {
		name := C.CString("vips-runtime")
		defer C.free(unsafe.Pointer(name))
		if C.vr_startup(name) != 0 {
			return errors.Startup("vips_init failed: "+lastError(), errors.ErrNative)
		}
		started = true
		Logger().Debug("libvips started", zap.String("version", Version()))
	}

	if cfg == nil {
		cfg = NewConfig()
	}
	C.vr_configure(C.int(cfg.Concurrency), C.int(cfg.CacheMaxOps), C.int64_t(cfg.CacheMaxMem), cbool(cfg.LeakCheck))
	Logger().Debug("libvips configured",
		zap.Int("concurrency", cfg.Concurrency),
		zap.Int("cache_max_ops", cfg.CacheMaxOps),
		zap.Int64("cache_max_mem", cfg.CacheMaxMem),
		zap.Bool("leak_check", cfg.LeakCheck))
	return nil
}

// Shutdown drops the operation cache and shuts libvips down. Images still
// open at this point must not be used afterwards.
func Shutdown() {
	startMu.Lock()
	defer startMu.Unlock()

	if !started || shutdown {
		return
	}
	C.vr_shutdown()
	shutdown = true
	if n := LiveAnchors(); n > 0 {
		Logger().Warn("libvips shut down with anchored buffers", zap.Int("live", n))
	}
}

// Version returns the libvips version as "major.minor.micro".
func Version() string {
	return fmt.Sprintf("%d.%d.%d", int(C.vr_version(0)), int(C.vr_version(1)), int(C.vr_version(2)))
}

// DropCache evicts every cached operation, finalizing images that were only
// kept alive by the cache.
func DropCache() {
	C.vr_cache_drop_all()
}

// lastError returns and clears the libvips error text left by the failing
// call.
func lastError() string {
	text := C.GoString(C.vr_error_buffer())
	C.vr_error_clear()
	return strings.TrimSpace(text)
}

func clearError() {
	C.vr_error_clear()
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
