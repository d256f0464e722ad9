package vips

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/resource"
)

func TestWithBorrowedMemory(t *testing.T) {
	ev := watchAnchors(t)
	pixels := gradient(64, 64, 3)

	var base, thumb *Image
	var encoded []byte
	err := WithBorrowedMemory(pixels, 64, 64, 3, FormatUchar, func(img *Image) error {
		base = img
		if !img.Borrowed() {
			t.Error("image should report Borrowed")
		}
		var err error
		thumb, err = img.Thumbnail(32, nil)
		if err != nil {
			return err
		}
		if !thumb.Borrowed() {
			t.Error("derived image should inherit the borrow scope")
		}
		encoded, err = thumb.PngsaveBuffer(nil)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, img := range []*Image{base, thumb} {
		if !img.Expired() {
			t.Error("image should be expired after the scope")
		}
		if img.Width() != 0 {
			t.Error("expired image should report zero width")
		}
		if _, err := img.Copy(); !stderrors.Is(err, errors.ErrExpired) {
			t.Errorf("Copy = %v, want ErrExpired", err)
		}
	}

	var e *errors.Error
	_, err = base.Thumbnail(10, nil)
	if !stderrors.As(err, &e) || e.Phase != errors.PhaseBorrow {
		t.Errorf("err = %v, want borrow phase", err)
	}

	if created, dropped := ev.counts(resource.TypeBorrowedBuffer); created != 1 || dropped != 1 {
		t.Errorf("borrowed buffer created %d, released %d", created, dropped)
	}
	if n := anchors.CountTyped(resource.TypeBorrowedBuffer); n != 0 {
		t.Errorf("%d borrowed buffers still registered", n)
	}

	// Serialized output outlives the scope and the caller keeps the pixels.
	back, err := NewFromBuffer(encoded, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer back.Close()
	checkDims(t, back, 32, 32, 3)
	if !bytes.Equal(pixels, gradient(64, 64, 3)) {
		t.Error("borrowed pixels were modified")
	}
}

func TestWithBorrowedMemory_CloseInside(t *testing.T) {
	err := WithBorrowedMemory(gradient(8, 8, 1), 8, 8, 1, FormatUchar, func(img *Image) error {
		cp, err := img.Copy()
		if err != nil {
			return err
		}
		cp.Close()
		if n, _ := anchors.Borrows(img.scope.handle); n != 1 {
			t.Errorf("borrows = %d after closing the copy, want 1", n)
		}
		if !cp.Released() || cp.Expired() {
			t.Error("closed copy should be released, not expired")
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWithBorrowedMemory_Errors(t *testing.T) {
	want := stderrors.New("callback failed")
	err := WithBorrowedMemory(gradient(4, 4, 1), 4, 4, 1, FormatUchar, func(*Image) error {
		return want
	})
	if err != want {
		t.Errorf("err = %v, want callback error", err)
	}

	err = WithBorrowedMemory(make([]byte, 3), 4, 4, 1, FormatUchar, func(*Image) error { return nil })
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidInput {
		t.Errorf("err = %v, want invalid input", err)
	}

	if err := WithBorrowedMemory(gradient(4, 4, 1), 4, 4, 1, FormatUchar, nil); err == nil {
		t.Error("nil callback should fail")
	}

	if n := anchors.CountTyped(resource.TypeBorrowedBuffer); n != 0 {
		t.Errorf("%d borrowed buffers leaked", n)
	}
}
