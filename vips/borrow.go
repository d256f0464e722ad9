package vips

import (
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/resource"
)

// borrowScope tracks the images that read from one borrowed buffer. Each live
// image in the scope holds one borrow on the buffer's table entry.
type borrowScope struct {
	images []*Image
	handle resource.Handle
}

func (s *borrowScope) add(img *Image) {
	img.scope = s
	s.images = append(s.images, img)
	anchors.Borrow(s.handle)
}

func (s *borrowScope) remove(img *Image) {
	if i := slices.Index(s.images, img); i >= 0 {
		s.images = slices.Delete(s.images, i, i+1)
		anchors.ReturnBorrow(s.handle)
	}
}

// end expires every image still open in the scope, newest first, and then
// releases the buffer.
func (s *borrowScope) end() {
	for i := len(s.images) - 1; i >= 0; i-- {
		img := s.images[i]
		if img.state == stateLive {
			img.unref(stateExpired)
		}
		anchors.ReturnBorrow(s.handle)
	}
	s.images = nil
	if _, err := anchors.Release(s.handle); err != nil {
		Logger().Error("borrowed buffer not released", zap.Uint32("handle", uint32(s.handle)), zap.Error(err))
	}
}

// WithBorrowedMemory wraps pixels in an image that is valid only while fn
// runs. pixels is not copied and stays owned by the caller. Every image
// derived from the borrowed one inside fn is tied to the same scope; when fn
// returns they are all released and further use fails with errors.ErrExpired.
// Results that must outlive the scope have to be serialized inside fn.
func WithBorrowedMemory(pixels []byte, width, height, bands int, format BandFormat, fn func(*Image) error) error {
	const op = "WithBorrowedMemory"
	if fn == nil {
		return errors.NilPointer(errors.PhaseBorrow, op, "callback")
	}
	if err := checkPixels(op, pixels, width, height, bands, format); err != nil {
		return err
	}

	p := resource.Pin(pixels)
	h := anchors.Insert(resource.TypeBorrowedBuffer, p)
	if h == 0 {
		p.Drop()
		return errors.New(errors.PhaseBorrow, errors.KindAllocation).
			Op(op).
			Detail("no handle available for borrowed buffer").
			Build()
	}

	ptr, err := newFromPinned(op, p, width, height, bands, format)
	if err != nil {
		anchors.Remove(h)
		return err
	}

	scope := &borrowScope{handle: h}
	defer scope.end()
	return fn(newImage(ptr, scope))
}
