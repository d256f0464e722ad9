package vips

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/wippyai/vips-runtime/resource"
)

func TestMain(m *testing.M) {
	// Without the operation cache, images finalize as soon as their last
	// reference is dropped, which makes buffer release observable.
	if err := Startup(NewConfig().WithCacheMaxOps(0).WithConcurrency(1)); err != nil {
		fmt.Fprintln(os.Stderr, "vips startup:", err)
		os.Exit(1)
	}
	code := m.Run()
	Shutdown()
	os.Exit(code)
}

// gradient returns width×height×bands pixels with a diagonal ramp per band.
func gradient(width, height, bands int) []byte {
	buf := make([]byte, width*height*bands)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			for b := 0; b < bands; b++ {
				buf[(y*width+x)*bands+b] = byte((x + y + b*40) % 256)
			}
		}
	}
	return buf
}

func mustMemory(t *testing.T, width, height, bands int) *Image {
	t.Helper()
	img, err := NewFromMemory(gradient(width, height, bands), width, height, bands, FormatUchar)
	if err != nil {
		t.Fatalf("NewFromMemory: %v", err)
	}
	return img
}

func checkDims(t *testing.T, img *Image, width, height, bands int) {
	t.Helper()
	if img.Width() != width || img.Height() != height || img.Bands() != bands {
		t.Fatalf("image is %dx%dx%d, want %dx%dx%d",
			img.Width(), img.Height(), img.Bands(), width, height, bands)
	}
}

// anchorEvents counts table events per type; the release callback may run
// on a libvips worker thread.
type anchorEvents struct {
	created map[uint32]int
	dropped map[uint32]int
	tokens  map[resource.Handle]int
	mu      sync.Mutex
}

func watchAnchors(t *testing.T) *anchorEvents {
	t.Helper()
	ev := &anchorEvents{
		created: make(map[uint32]int),
		dropped: make(map[uint32]int),
		tokens:  make(map[resource.Handle]int),
	}
	ObserveAnchors(ev)
	t.Cleanup(func() { StopObservingAnchors(ev) })
	return ev
}

func (e *anchorEvents) OnResourceEvent(ev resource.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch ev.Type {
	case resource.EventCreated:
		e.created[ev.TypeID]++
	case resource.EventDropped:
		e.dropped[ev.TypeID]++
		e.tokens[ev.Handle]++
	}
}

func (e *anchorEvents) counts(typeID uint32) (created, dropped int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.created[typeID], e.dropped[typeID]
}

func (e *anchorEvents) releasedOnce(t *testing.T) {
	t.Helper()
	e.mu.Lock()
	defer e.mu.Unlock()
	for h, n := range e.tokens {
		if n != 1 {
			t.Errorf("token %d released %d times", h, n)
		}
	}
}

type panicOnDrop struct{ seen atomic.Int32 }

func (p *panicOnDrop) OnResourceEvent(ev resource.Event) {
	if ev.Type == resource.EventDropped && ev.TypeID == resource.TypeAnchoredBuffer {
		p.seen.Add(1)
		panic("observer failure")
	}
}

func TestObserverPanicDuringRelease(t *testing.T) {
	before := LiveAnchors()
	obs := &panicOnDrop{}
	ObserveAnchors(obs)
	defer StopObservingAnchors(obs)

	img := mustMemory(t, 8, 8, 1)
	if LiveAnchors() != before+1 {
		t.Fatalf("LiveAnchors = %d, want %d", LiveAnchors(), before+1)
	}
	img.Close()
	DropCache()

	if obs.seen.Load() != 1 {
		t.Fatalf("observer saw %d drops, want 1", obs.seen.Load())
	}
	if LiveAnchors() != before {
		t.Errorf("LiveAnchors = %d, want %d", LiveAnchors(), before)
	}
}

func TestVersion(t *testing.T) {
	if v := Version(); v == "" || v == "0.0.0" {
		t.Fatalf("Version = %q", v)
	}
}

func TestStartup_Repeatable(t *testing.T) {
	if err := Startup(nil); err != nil {
		t.Fatalf("second Startup: %v", err)
	}
	if err := Startup(NewConfig().WithCacheMaxOps(0).WithCacheMaxMem(0).WithLeakCheck(false)); err != nil {
		t.Fatalf("reconfigure: %v", err)
	}
}

func TestConfigBuilder(t *testing.T) {
	cfg := NewConfig()
	if cfg.Concurrency != -1 || cfg.CacheMaxOps != -1 || cfg.CacheMaxMem != -1 {
		t.Fatalf("NewConfig = %+v, want libvips defaults", cfg)
	}
	cfg.WithConcurrency(2).WithCacheMaxOps(10).WithCacheMaxMem(1 << 20).WithLeakCheck(true)
	if cfg.Concurrency != 2 || cfg.CacheMaxOps != 10 || cfg.CacheMaxMem != 1<<20 || !cfg.LeakCheck {
		t.Fatalf("builder = %+v", cfg)
	}
}
