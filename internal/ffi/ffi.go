// Package ffi emits native calls described by kwargs descriptors through libffi.
//
// cgo cannot call C variadic functions, and the shape of an optional-argument
// tail is only known at invocation time, so every call is prepared with
// ffi_prep_cif_var from the descriptor's kind list. All call frame memory
// (argument storage, argv, the type vector, C strings and out-slots) lives
// on the C heap for the duration of exactly one call.
//
// This package is internal to vips-runtime.
package ffi

/*
#cgo pkg-config: libffi
#include <ffi.h>
#include <stddef.h>

static ffi_type* vr_size_type(void) {
  return sizeof(size_t) == 8 ? &ffi_type_uint64 : &ffi_type_uint32;
}
*/
import "C"

import (
	"fmt"

	"github.com/wippyai/vips-runtime/kwargs"
)

// abiTypes maps every kwargs kind to the ABI type the native side reads.
// gboolean is an int, and variadic arguments narrower than int are promoted,
// so booleans travel as sint32.
var abiTypes = map[kwargs.Kind]*C.ffi_type{
	kwargs.KindInt32:   &C.ffi_type_sint32,
	kwargs.KindUint32:  &C.ffi_type_uint32,
	kwargs.KindBool:    &C.ffi_type_sint32,
	kwargs.KindDouble:  &C.ffi_type_double,
	kwargs.KindEnum:    &C.ffi_type_uint32,
	kwargs.KindString:  &C.ffi_type_pointer,
	kwargs.KindPointer: &C.ffi_type_pointer,
	kwargs.KindOut:     &C.ffi_type_pointer,
	kwargs.KindSize:    C.vr_size_type(),
}

// typeFor returns the ABI type for k. A kind without an entry is a defect in
// the kind catalogue, not a runtime input error.
func typeFor(k kwargs.Kind) *C.ffi_type {
	t, ok := abiTypes[k]
	if !ok {
		panic(fmt.Sprintf("ffi: internal: no ABI type registered for kind %s", k))
	}
	return t
}

// Registered reports whether k has an ABI type.
func Registered(k kwargs.Kind) bool {
	_, ok := abiTypes[k]
	return ok
}

// ABISize returns the byte size of the ABI type registered for k.
func ABISize(k kwargs.Kind) uintptr {
	return uintptr(typeFor(k).size)
}
