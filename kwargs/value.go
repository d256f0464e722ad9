package kwargs

import (
	"fmt"
	"math"
	"unsafe"
)

// Value is a tagged argument value.
type Value struct {
	ptr  unsafe.Pointer
	str  string
	bits uint64
	kind Kind
}

func Int32(v int32) Value { return Value{kind: KindInt32, bits: uint64(uint32(v))} }

func Uint32(v uint32) Value { return Value{kind: KindUint32, bits: uint64(v)} }

func Enum(v uint32) Value { return Value{kind: KindEnum, bits: uint64(v)} }

func Double(v float64) Value { return Value{kind: KindDouble, bits: math.Float64bits(v)} }

func Size(v uint64) Value { return Value{kind: KindSize, bits: v} }

func String(s string) Value { return Value{kind: KindString, str: s} }

// Pointer wraps an opaque pointer. The pointer must not point into Go memory
// unless that memory is pinned for the duration of the call.
func Pointer(p unsafe.Pointer) Value { return Value{kind: KindPointer, ptr: p} }

// Null is the pointer-kinded NULL used as the optional argument sentinel.
func Null() Value { return Value{kind: KindPointer} }

// Out requests a zeroed out-slot. The callee receives the slot's address.
func Out() Value { return Value{kind: KindOut} }

func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, bits: 1}
	}
	return Value{kind: KindBool}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) Int32() int32 { return int32(uint32(v.bits)) }

func (v Value) Uint32() uint32 { return uint32(v.bits) }

func (v Value) Bool() bool { return v.bits != 0 }

func (v Value) Double() float64 { return math.Float64frombits(v.bits) }

func (v Value) Size() uint64 { return v.bits }

func (v Value) Str() string { return v.str }

func (v Value) Pointer() unsafe.Pointer { return v.ptr }

// IsNull reports whether v is a NULL pointer value.
func (v Value) IsNull() bool { return v.kind == KindPointer && v.ptr == nil }

func (v Value) String() string {
	switch v.kind {
	case KindInt32:
		return fmt.Sprintf("int32(%d)", v.Int32())
	case KindUint32:
		return fmt.Sprintf("uint32(%d)", v.Uint32())
	case KindEnum:
		return fmt.Sprintf("enum(%d)", v.Uint32())
	case KindBool:
		return fmt.Sprintf("bool(%t)", v.Bool())
	case KindDouble:
		return fmt.Sprintf("double(%g)", v.Double())
	case KindSize:
		return fmt.Sprintf("size(%d)", v.bits)
	case KindString:
		return fmt.Sprintf("string(%q)", v.str)
	case KindPointer:
		if v.ptr == nil {
			return "pointer(NULL)"
		}
		return fmt.Sprintf("pointer(%p)", v.ptr)
	case KindOut:
		return "out"
	}
	return "invalid"
}
