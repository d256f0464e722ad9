package vips

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/kwargs"
)

// unary runs an operation whose first two positional arguments are the input
// image and the output slot, and wraps the output.
func (img *Image) unary(op string, sig *kwargs.Signature, fill func(*kwargs.Builder)) (*Image, error) {
	in, err := img.use(op)
	if err != nil {
		return nil, err
	}
	b := sig.NewCall().Arg(kwargs.Pointer(in)).Arg(kwargs.Out())
	if fill != nil {
		fill(b)
	}
	res, err := invoke(errors.PhaseCall, b)
	if err != nil {
		return nil, err
	}
	out := res.Out(0)
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseCall, sig.Symbol, "output image")
	}
	return img.derive(out), nil
}

// Thumbnail shrinks the image to fit width (and Height, when set).
func (img *Image) Thumbnail(width int, opts *ThumbnailOptions) (*Image, error) {
	return img.unary("Thumbnail", sigThumbnail, func(b *kwargs.Builder) {
		b.ArgAny(width)
		opts.apply(b)
	})
}

// Embed places the image at (x, y) inside a width×height canvas.
func (img *Image) Embed(x, y, width, height int, opts *EmbedOptions) (*Image, error) {
	var bg *C.VipsArrayDouble
	if opts != nil && len(opts.Background) > 0 {
		bg = C.vr_array_double((*C.double)(unsafe.Pointer(&opts.Background[0])), C.int(len(opts.Background)))
		defer C.vr_array_double_unref(bg)
	}
	return img.unary("Embed", sigEmbed, func(b *kwargs.Builder) {
		b.ArgAny(x).
			ArgAny(y).
			ArgAny(width).
			ArgAny(height)
		if opts != nil {
			kwargs.Opt(b, "extend", opts.Extend)
		}
		if bg != nil {
			b.Set("background", kwargs.Pointer(unsafe.Pointer(bg)))
		}
	})
}

// ExtractArea crops a width×height region whose top-left corner is (left, top).
func (img *Image) ExtractArea(left, top, width, height int) (*Image, error) {
	return img.unary("ExtractArea", sigExtractArea, func(b *kwargs.Builder) {
		b.ArgAny(left).
			ArgAny(top).
			ArgAny(width).
			ArgAny(height)
	})
}

// Resize scales the image by scale (and VScale vertically, when set).
func (img *Image) Resize(scale float64, opts *ResizeOptions) (*Image, error) {
	return img.unary("Resize", sigResize, func(b *kwargs.Builder) {
		b.Arg(kwargs.Double(scale))
		opts.apply(b)
	})
}

// Smartcrop crops to width×height, keeping the most interesting region.
func (img *Image) Smartcrop(width, height int, opts *SmartcropOptions) (*Image, error) {
	return img.unary("Smartcrop", sigSmartcrop, func(b *kwargs.Builder) {
		b.ArgAny(width).ArgAny(height)
		opts.apply(b)
	})
}

// Copy returns a new image sharing the pixels of img.
func (img *Image) Copy() (*Image, error) {
	return img.unary("Copy", sigCopy, nil)
}

// HistFind computes the histogram of all bands.
func (img *Image) HistFind() (*Image, error) {
	return img.unary("HistFind", sigHistFind, nil)
}

// HistEntropy returns the entropy of a histogram image.
func (img *Image) HistEntropy() (float64, error) {
	in, err := img.use("HistEntropy")
	if err != nil {
		return 0, err
	}
	res, err := invoke(errors.PhaseCall, sigHistEntropy.NewCall().Arg(kwargs.Pointer(in)).Arg(kwargs.Out()))
	if err != nil {
		return 0, err
	}
	return res.OutDouble(0), nil
}
