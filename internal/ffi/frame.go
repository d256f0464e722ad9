package ffi

/*
#include <ffi.h>
#include <stdlib.h>

static size_t vr_cif_size(void) { return sizeof(ffi_cif); }
static size_t vr_arg_size(void) { return sizeof(ffi_arg); }
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
	"github.com/wippyai/vips-runtime/kwargs"
)

const slotSize = 8

// frame is the C-heap materialisation of one descriptor. Layout of the single
// block: cif | rvalue | argv[n] | types[n] | slots[n] | outs[n].
type frame struct {
	block   unsafe.Pointer
	cif     *C.ffi_cif
	ret     unsafe.Pointer
	argv    []unsafe.Pointer
	types   []*C.ffi_type
	slots   unsafe.Pointer
	outs    unsafe.Pointer
	strings []*C.char
	outIdx  []int
	n       int
}

func align16(n uintptr) uintptr { return (n + 15) &^ 15 }

func newFrame(d *kwargs.Descriptor) (*frame, error) {
	n := d.Len()
	cifSize := align16(uintptr(C.vr_cif_size()))
	retSize := align16(max(uintptr(C.vr_arg_size()), slotSize))
	ptrSize := unsafe.Sizeof(uintptr(0))
	vecSize := align16(uintptr(n) * ptrSize)
	slotsSize := align16(uintptr(n) * slotSize)
	total := cifSize + retSize + 2*vecSize + 2*slotsSize

	block := C.calloc(1, C.size_t(total))
	if block == nil {
		return nil, errors.AllocationFailed(errors.PhaseCall, total)
	}

	f := &frame{block: block, n: n}
	off := uintptr(0)
	f.cif = (*C.ffi_cif)(block)
	off += cifSize
	f.ret = unsafe.Add(block, off)
	off += retSize
	f.argv = unsafe.Slice((*unsafe.Pointer)(unsafe.Add(block, off)), n)
	off += vecSize
	f.types = unsafe.Slice((**C.ffi_type)(unsafe.Add(block, off)), n)
	off += vecSize
	f.slots = unsafe.Add(block, off)
	off += slotsSize
	f.outs = unsafe.Add(block, off)

	for i, e := range d.Entries {
		slot := f.slot(i)
		f.types[i] = typeFor(e.Kind())
		f.argv[i] = slot
		v := e.Value
		switch e.Kind() {
		case kwargs.KindInt32:
			*(*int32)(slot) = v.Int32()
		case kwargs.KindBool:
			*(*int32)(slot) = boolInt(v.Bool())
		case kwargs.KindUint32, kwargs.KindEnum:
			*(*uint32)(slot) = v.Uint32()
		case kwargs.KindDouble:
			*(*float64)(slot) = v.Double()
		case kwargs.KindSize:
			if ABISize(kwargs.KindSize) == 8 {
				*(*uint64)(slot) = v.Size()
			} else {
				*(*uint32)(slot) = uint32(v.Size())
			}
		case kwargs.KindString:
			cs := C.CString(v.Str())
			f.strings = append(f.strings, cs)
			*(*unsafe.Pointer)(slot) = unsafe.Pointer(cs)
		case kwargs.KindPointer:
			*(*unsafe.Pointer)(slot) = v.Pointer()
		case kwargs.KindOut:
			*(*unsafe.Pointer)(slot) = f.out(i)
			f.outIdx = append(f.outIdx, i)
		default:
			f.free()
			panic("ffi: internal: unhandled kind " + e.Kind().String())
		}
	}
	return f, nil
}

func (f *frame) slot(i int) unsafe.Pointer { return unsafe.Add(f.slots, i*slotSize) }

func (f *frame) out(i int) unsafe.Pointer { return unsafe.Add(f.outs, i*slotSize) }

func (f *frame) typeVector() **C.ffi_type {
	if f.n == 0 {
		return nil
	}
	return &f.types[0]
}

func (f *frame) argVector() *unsafe.Pointer {
	if f.n == 0 {
		return nil
	}
	return &f.argv[0]
}

// free releases every C allocation owned by the frame.
func (f *frame) free() {
	for _, cs := range f.strings {
		C.free(unsafe.Pointer(cs))
	}
	f.strings = nil
	if f.block != nil {
		C.free(f.block)
		f.block = nil
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
