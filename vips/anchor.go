package vips

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/resource"
)

// anchors holds every Go buffer that native images currently reference. The
// handle doubles as the ownership token given to libvips, so handles are
// never reused: a stale token can only miss, never hit another buffer.
var anchors = resource.NewTable(resource.WithoutReuse())

// anchor registers p under a fresh token and arranges for the token to come
// back through the image's postclose signal. On failure the image reference
// is dropped and p unpinned.
func anchor(image unsafe.Pointer, p *resource.Pinned, typeID uint32) error {
	token := anchors.Insert(typeID, p)
	if token == 0 {
		C.vr_unref((*C.VipsImage)(image))
		p.Drop()
		return errors.New(errors.PhaseConstruct, errors.KindAllocation).
			Op("anchor").
			Detail("no ownership token available").
			Build()
	}
	C.vr_connect_postclose((*C.VipsImage)(image), C.uintptr_t(token))
	Logger().Debug("buffer anchored",
		zap.Uint32("token", uint32(token)),
		zap.String("type", resource.TypeName(typeID)),
		zap.Int("bytes", p.Len()))
	return nil
}

// vipsruntimePostClose runs on whichever thread finalizes an anchored image.
// It releases the buffer behind token and does nothing else. A token that is
// not in the table means native state is corrupt, so the process stops.
//
//export vipsruntimePostClose
func vipsruntimePostClose(image unsafe.Pointer, token C.uintptr_t) {
	h := resource.Handle(token)
	defer func() {
		if r := recover(); r != nil {
			Logger().Error("anchor observer panicked",
				zap.Uint32("token", uint32(h)),
				zap.Any("panic", r))
		}
	}()
	if _, err := anchors.Release(h); err != nil {
		e := errors.InvalidToken(uint32(h))
		e.Cause = err
		Logger().Fatal("postclose with invalid ownership token",
			zap.Uintptr("image", uintptr(image)),
			zap.Error(e))
		return
	}
	Logger().Debug("buffer released", zap.Uint32("token", uint32(h)))
}

// LiveAnchors returns the number of Go buffers (pixel and encoded) still
// owned by native images.
func LiveAnchors() int {
	return anchors.CountTyped(resource.TypeAnchoredBuffer) + anchors.CountTyped(resource.TypeEncodedBuffer)
}

// ObserveAnchors subscribes o to creation and release events of owned and
// borrowed buffers. Release events are delivered from the libvips
// finalization callback, possibly on a libvips worker thread, so o must not
// block or call back into this package. A panic in o is logged and discarded
// after the buffer has been released.
func ObserveAnchors(o resource.Observer) {
	anchors.Subscribe(o)
}

// StopObservingAnchors removes an observer added with ObserveAnchors.
func StopObservingAnchors(o resource.Observer) {
	anchors.Unsubscribe(o)
}
