package vips

/*
#include "bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/kwargs"
	"github.com/wippyai/vips-runtime/resource"
)

type state uint8

const (
	stateLive state = iota
	stateReleased
	stateExpired
)

// Image is an owning handle to one native image reference.
type Image struct {
	ptr   *C.VipsImage
	scope *borrowScope
	state state
}

func newImage(p unsafe.Pointer, scope *borrowScope) *Image {
	img := &Image{ptr: (*C.VipsImage)(p)}
	if scope != nil {
		scope.add(img)
	}
	return img
}

// use returns the native pointer of a live image, or the error describing why
// op cannot run.
func (img *Image) use(op string) (unsafe.Pointer, error) {
	if img == nil {
		return nil, errors.NilPointer(errors.PhaseCall, op, "image")
	}
	switch img.state {
	case stateReleased:
		return nil, errors.Released(op)
	case stateExpired:
		return nil, errors.Expired(op)
	}
	return unsafe.Pointer(img.ptr), nil
}

// derive wraps an operation's output. Outputs inherit the borrow scope of
// their input because libvips reads input pixels lazily.
func (img *Image) derive(p unsafe.Pointer) *Image {
	return newImage(p, img.scope)
}

// Close releases the native reference. It is idempotent and always returns nil.
func (img *Image) Close() error {
	if img == nil || img.state != stateLive {
		return nil
	}
	img.unref(stateReleased)
	if img.scope != nil {
		img.scope.remove(img)
	}
	return nil
}

func (img *Image) unref(next state) {
	p := img.ptr
	img.ptr = nil
	img.state = next
	C.vr_unref(p)
	Logger().Debug("image reference dropped", zap.Uintptr("image", uintptr(unsafe.Pointer(p))))
}

// Released reports whether Close has been called.
func (img *Image) Released() bool { return img.state == stateReleased }

// Expired reports whether the image's borrowed buffer scope has ended.
func (img *Image) Expired() bool { return img.state == stateExpired }

// Borrowed reports whether the image depends on a borrowed buffer.
func (img *Image) Borrowed() bool { return img.scope != nil }

// Width returns the width in pixels, or 0 for a handle that is not live.
func (img *Image) Width() int {
	if img.state != stateLive {
		return 0
	}
	return int(C.vr_width(img.ptr))
}

// Height returns the height in pixels, or 0 for a handle that is not live.
func (img *Image) Height() int {
	if img.state != stateLive {
		return 0
	}
	return int(C.vr_height(img.ptr))
}

// Bands returns the number of bands, or 0 for a handle that is not live.
func (img *Image) Bands() int {
	if img.state != stateLive {
		return 0
	}
	return int(C.vr_bands(img.ptr))
}

// Format returns the band format, or FormatUchar for a handle that is not live.
func (img *Image) Format() BandFormat {
	if img.state != stateLive {
		return FormatUchar
	}
	return BandFormat(C.vr_format(img.ptr))
}

// NewFromFile opens an image file. Pixels are decoded on demand.
func NewFromFile(path string, opts *LoadOptions) (*Image, error) {
	const op = "NewFromFile"
	if path == "" {
		return nil, errors.InvalidInput(errors.PhaseConstruct, op, "empty path")
	}

	b := sigNewFromFile.NewCall().Arg(kwargs.String(path))
	opts.apply(b)
	res, err := invoke(errors.PhaseConstruct, b)
	if err != nil {
		return nil, err
	}
	Logger().Debug("image opened", zap.String("path", path))
	return newImage(res.Ptr, nil), nil
}

// NewFromBuffer decodes an encoded image held in memory. data is pinned and
// stays owned by the image until libvips finalizes it; the caller must not
// modify it afterwards.
func NewFromBuffer(data []byte, opts *LoadOptions) (*Image, error) {
	const op = "NewFromBuffer"
	if len(data) == 0 {
		return nil, errors.InvalidInput(errors.PhaseConstruct, op, "empty buffer")
	}

	p := resource.Pin(data)
	b := sigNewFromBuffer.NewCall().
		Arg(kwargs.Pointer(p.Addr())).
		Arg(kwargs.Size(uint64(p.Len()))).
		Arg(kwargs.String(""))
	opts.apply(b)
	res, err := invoke(errors.PhaseConstruct, b)
	if err != nil {
		p.Drop()
		return nil, err
	}
	if err := anchor(res.Ptr, p, resource.TypeEncodedBuffer); err != nil {
		return nil, err
	}
	return newImage(res.Ptr, nil), nil
}

// NewFromMemory wraps raw pixels in an image without copying. Ownership of
// pixels moves to the image: it is released exactly once, when libvips
// finalizes the image and everything derived from it.
func NewFromMemory(pixels []byte, width, height, bands int, format BandFormat) (*Image, error) {
	const op = "NewFromMemory"
	if err := checkPixels(op, pixels, width, height, bands, format); err != nil {
		return nil, err
	}

	p := resource.Pin(pixels)
	ptr, err := newFromPinned(op, p, width, height, bands, format)
	if err != nil {
		p.Drop()
		return nil, err
	}
	if err := anchor(ptr, p, resource.TypeAnchoredBuffer); err != nil {
		return nil, err
	}
	Logger().Debug("image wraps owned pixels",
		zap.Int("width", width), zap.Int("height", height), zap.Int("bands", bands),
		zap.Stringer("format", format))
	return newImage(ptr, nil), nil
}

// WithImage opens an image, passes it to fn and closes it on every exit path.
func WithImage(open func() (*Image, error), fn func(*Image) error) error {
	img, err := open()
	if err != nil {
		return err
	}
	defer img.Close()
	return fn(img)
}

func checkPixels(op string, pixels []byte, width, height, bands int, format BandFormat) error {
	if width <= 0 || height <= 0 || bands <= 0 {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Op(op).
			Detail("dimensions must be positive, got %dx%dx%d", width, height, bands).
			Build()
	}
	sz := format.Sizeof()
	if sz == 0 {
		return errors.Unsupported(errors.PhaseConstruct, "band format "+format.String())
	}
	want := uint64(width) * uint64(height) * uint64(bands) * uint64(sz)
	if uint64(len(pixels)) != want {
		return errors.New(errors.PhaseConstruct, errors.KindInvalidInput).
			Op(op).
			Detail("buffer holds %d bytes, %dx%dx%d %s needs %d", len(pixels), width, height, bands, format, want).
			Build()
	}
	return nil
}

func newFromPinned(op string, p *resource.Pinned, width, height, bands int, format BandFormat) (unsafe.Pointer, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	clearError()
	ptr := C.vr_new_from_memory(p.Addr(), C.size_t(p.Len()),
		C.int(width), C.int(height), C.int(bands), C.int(format))
	if ptr == nil {
		return nil, errors.Native(errors.PhaseConstruct, op, lastError())
	}
	return unsafe.Pointer(ptr), nil
}
