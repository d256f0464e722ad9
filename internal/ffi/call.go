package ffi

/*
#include <ffi.h>

static int vr_prep_cif_var(ffi_cif* cif, unsigned int nfixed, unsigned int ntotal,
    ffi_type* rtype, ffi_type** atypes) {
  return ffi_prep_cif_var(cif, FFI_DEFAULT_ABI, nfixed, ntotal, rtype, atypes);
}

// Accept a generic void* fn to avoid cgo function-pointer typing at the call site.
static void vr_call(ffi_cif* cif, void* fn, void* rvalue, void** avalue) {
  ffi_call(cif, (void (*)(void))fn, rvalue, avalue);
}

static int vr_read_sint32(void* rvalue) { return (int)(*(ffi_sarg*)rvalue); }
static void* vr_read_pointer(void* rvalue) { return *(void**)rvalue; }
*/
import "C"

import (
	"fmt"
	"math"
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/kwargs"
)

// Result is what one call returned: the return value and a copy of every
// out-slot, captured before the frame was freed.
type Result struct {
	Symbol string
	Ptr    unsafe.Pointer
	words  []uint64
	Status int32
}

// NumOuts returns the number of out-slots the call carried.
func (r *Result) NumOuts() int { return len(r.words) }

// OutWord returns the raw 8 bytes written into out-slot i.
func (r *Result) OutWord(i int) uint64 { return r.words[i] }

// Out returns out-slot i read as a pointer.
func (r *Result) Out(i int) unsafe.Pointer {
	w := r.words[i]
	return *(*unsafe.Pointer)(unsafe.Pointer(&w))
}

// OutInt32 returns out-slot i read as a C int.
func (r *Result) OutInt32(i int) int32 {
	w := r.words[i]
	return *(*int32)(unsafe.Pointer(&w))
}

// OutDouble returns out-slot i read as a C double.
func (r *Result) OutDouble(i int) float64 { return math.Float64frombits(r.words[i]) }

// Call invokes fn with the argument list described by d.
//
// The first d.Fixed entries are declared as fixed parameters and the rest as
// the variadic tail. The descriptor is not retained; every C allocation made
// for the call is released before Call returns.
func Call(fn unsafe.Pointer, d *kwargs.Descriptor) (*Result, error) {
	if fn == nil {
		return nil, errors.NilPointer(errors.PhaseCall, d.Symbol, "function pointer")
	}
	if d.Fixed < 0 || d.Fixed > d.Len() {
		return nil, errors.ShapeMismatch(d.Symbol,
			fmt.Sprintf("fixed count %d outside argument list of %d", d.Fixed, d.Len()))
	}

	f, err := newFrame(d)
	if err != nil {
		return nil, err
	}
	defer f.free()

	rtype := typeFor(kwargs.KindInt32)
	if d.Return == kwargs.KindPointer {
		rtype = typeFor(kwargs.KindPointer)
	}

	status := C.vr_prep_cif_var(f.cif, C.uint(d.Fixed), C.uint(d.Len()), rtype, f.typeVector())
	if status != C.FFI_OK {
		return nil, errors.New(errors.PhaseMarshal, errors.KindUnsupported).
			Op(d.Symbol).
			Detail("ffi_prep_cif_var rejected %d fixed / %d total arguments (status %d)",
				d.Fixed, d.Len(), int(status)).
			Build()
	}

	debugf("ffi call %s", d)
	C.vr_call(f.cif, fn, f.ret, f.argVector())

	res := &Result{Symbol: d.Symbol}
	if d.Return == kwargs.KindPointer {
		res.Ptr = C.vr_read_pointer(f.ret)
	} else {
		res.Status = int32(C.vr_read_sint32(f.ret))
	}
	if len(f.outIdx) > 0 {
		res.words = make([]uint64, len(f.outIdx))
		for j, i := range f.outIdx {
			res.words[j] = *(*uint64)(f.out(i))
		}
	}
	return res, nil
}

// Invoke resolves d.Symbol in the process image and calls it.
func Invoke(d *kwargs.Descriptor) (*Result, error) {
	fn, err := Lookup(d.Symbol)
	if err != nil {
		return nil, err
	}
	return Call(fn, d)
}
