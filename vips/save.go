package vips

/*
#include "bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/internal/ffi"
	"github.com/wippyai/vips-runtime/kwargs"
)

// WriteToFile saves the image; the format follows the file suffix.
func (img *Image) WriteToFile(path string) error {
	const op = "WriteToFile"
	in, err := img.use(op)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.InvalidInput(errors.PhaseSave, op, "empty path")
	}
	_, err = invoke(errors.PhaseSave, sigWriteToFile.NewCall().
		Arg(kwargs.Pointer(in)).
		Arg(kwargs.String(path)))
	return err
}

// WriteToBuffer encodes the image in the format named by suffix, e.g. ".png".
func (img *Image) WriteToBuffer(suffix string) ([]byte, error) {
	const op = "WriteToBuffer"
	in, err := img.use(op)
	if err != nil {
		return nil, err
	}
	res, err := invoke(errors.PhaseSave, sigWriteToBuffer.NewCall().
		Arg(kwargs.Pointer(in)).
		Arg(kwargs.String(suffix)).
		Arg(kwargs.Out()).
		Arg(kwargs.Out()))
	if err != nil {
		return nil, err
	}
	return takeBuffer(res, sigWriteToBuffer.Symbol)
}

// JpegsaveBuffer encodes the image as JPEG.
func (img *Image) JpegsaveBuffer(opts *JpegOptions) ([]byte, error) {
	return img.saveBuffer("JpegsaveBuffer", sigJpegsaveBuffer, opts.apply)
}

// PngsaveBuffer encodes the image as PNG.
func (img *Image) PngsaveBuffer(opts *PngOptions) ([]byte, error) {
	return img.saveBuffer("PngsaveBuffer", sigPngsaveBuffer, opts.apply)
}

// WebpsaveBuffer encodes the image as WebP.
func (img *Image) WebpsaveBuffer(opts *WebpOptions) ([]byte, error) {
	return img.saveBuffer("WebpsaveBuffer", sigWebpsaveBuffer, opts.apply)
}

func (img *Image) saveBuffer(op string, sig *kwargs.Signature, fill func(*kwargs.Builder)) ([]byte, error) {
	in, err := img.use(op)
	if err != nil {
		return nil, err
	}
	b := sig.NewCall().Arg(kwargs.Pointer(in)).Arg(kwargs.Out()).Arg(kwargs.Out())
	fill(b)
	res, err := invoke(errors.PhaseSave, b)
	if err != nil {
		return nil, err
	}
	return takeBuffer(res, sig.Symbol)
}

// WriteToMemory renders the image and returns its raw pixels, band
// interleaved, Width×Height×Bands×Format.Sizeof() bytes.
func (img *Image) WriteToMemory() ([]byte, error) {
	const op = "WriteToMemory"
	in, err := img.use(op)
	if err != nil {
		return nil, err
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	clearError()
	var size C.size_t
	p := C.vr_write_to_memory((*C.VipsImage)(in), &size)
	if p == nil {
		return nil, errors.Native(errors.PhaseSave, op, lastError())
	}
	return copyAndFree(p, uint64(size)), nil
}

// takeBuffer copies the (buf, len) out-slot pair into Go memory and frees
// the native allocation.
func takeBuffer(res *ffi.Result, symbol string) ([]byte, error) {
	p := res.Out(0)
	n := res.OutWord(1)
	if unsafe.Sizeof(uintptr(0)) == 4 {
		n &= 0xffffffff
	}
	if p == nil {
		return nil, errors.NilPointer(errors.PhaseSave, symbol, "output buffer")
	}
	return copyAndFree(p, n), nil
}

func copyAndFree(p unsafe.Pointer, n uint64) []byte {
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(p), n))
	C.vr_gfree(p)
	return out
}
