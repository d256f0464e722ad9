package kwargs

import (
	"math"
	"reflect"
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
)

type numClass uint8

const (
	notNumber numClass = iota
	signedInt
	unsignedInt
	floating
)

// classify reads any Go numeric value, including named types such as enums.
func classify(value any) (i int64, u uint64, f float64, c numClass) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), 0, 0, signedInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 0, rv.Uint(), 0, unsignedInt
	case reflect.Float32, reflect.Float64:
		return 0, 0, rv.Float(), floating
	}
	return 0, 0, 0, notNumber
}

// CoerceToInt32 converts integers and integral floats that fit in int32.
func CoerceToInt32(value any) (int32, bool) {
	i, u, f, c := classify(value)
	switch c {
	case signedInt:
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return int32(i), true
		}
	case unsignedInt:
		if u <= math.MaxInt32 {
			return int32(u), true
		}
	case floating:
		if f >= math.MinInt32 && f <= math.MaxInt32 && f == math.Trunc(f) {
			return int32(f), true
		}
	}
	return 0, false
}

// CoerceToUint32 converts non-negative integers and integral floats that fit in uint32.
func CoerceToUint32(value any) (uint32, bool) {
	i, u, f, c := classify(value)
	switch c {
	case signedInt:
		if i >= 0 && i <= math.MaxUint32 {
			return uint32(i), true
		}
	case unsignedInt:
		if u <= math.MaxUint32 {
			return uint32(u), true
		}
	case floating:
		if f >= 0 && f <= math.MaxUint32 && f == math.Trunc(f) {
			return uint32(f), true
		}
	}
	return 0, false
}

// CoerceToUint64 converts non-negative integers.
func CoerceToUint64(value any) (uint64, bool) {
	i, u, _, c := classify(value)
	switch c {
	case signedInt:
		if i >= 0 {
			return uint64(i), true
		}
	case unsignedInt:
		return u, true
	}
	return 0, false
}

// CoerceToFloat64 converts any Go number to float64.
func CoerceToFloat64(value any) (float64, bool) {
	i, u, f, c := classify(value)
	switch c {
	case signedInt:
		return float64(i), true
	case unsignedInt:
		return float64(u), true
	case floating:
		return f, true
	}
	return 0, false
}

// coerce converts a host value to the declared kind. On failure the returned
// error kind tells a wrong Go type apart from a number out of range.
func coerce(value any, kind Kind) (Value, errors.Kind) {
	if v, ok := value.(Value); ok {
		if v.kind == kind {
			return v, ""
		}
		return Value{}, errors.KindTypeMismatch
	}

	_, _, f, c := classify(value)
	numeric := c != notNumber
	integral := c == signedInt || c == unsignedInt || (c == floating && f == math.Trunc(f))

	rangeFailure := func() errors.Kind {
		if numeric && integral {
			return errors.KindOverflow
		}
		return errors.KindTypeMismatch
	}

	switch kind {
	case KindInt32:
		if n, ok := CoerceToInt32(value); ok {
			return Int32(n), ""
		}
		return Value{}, rangeFailure()
	case KindUint32:
		if n, ok := CoerceToUint32(value); ok {
			return Uint32(n), ""
		}
		return Value{}, rangeFailure()
	case KindEnum:
		if n, ok := CoerceToUint32(value); ok {
			return Enum(n), ""
		}
		return Value{}, rangeFailure()
	case KindSize:
		if c == floating {
			return Value{}, errors.KindTypeMismatch
		}
		if n, ok := CoerceToUint64(value); ok {
			return Size(n), ""
		}
		return Value{}, rangeFailure()
	case KindDouble:
		if n, ok := CoerceToFloat64(value); ok {
			return Double(n), ""
		}
	case KindBool:
		if b, ok := value.(bool); ok {
			return Bool(b), ""
		}
	case KindString:
		if s, ok := value.(string); ok {
			return String(s), ""
		}
	case KindPointer:
		switch p := value.(type) {
		case nil:
			return Null(), ""
		case unsafe.Pointer:
			return Pointer(p), ""
		}
	}
	return Value{}, errors.KindTypeMismatch
}
