package kwargs

import (
	"math"
	"testing"
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
)

func TestCoerceToInt32(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  int32
		ok    bool
	}{
		{name: "int", value: 42, want: 42, ok: true},
		{name: "negative", value: -7, want: -7, ok: true},
		{name: "uint8", value: uint8(255), want: 255, ok: true},
		{name: "integral float", value: 3.0, want: 3, ok: true},
		{name: "named", value: testSizeForce, want: 3, ok: true},
		{name: "max", value: int64(math.MaxInt32), want: math.MaxInt32, ok: true},
		{name: "overflow", value: int64(math.MaxInt32) + 1},
		{name: "uint overflow", value: uint64(math.MaxUint32)},
		{name: "fraction", value: 0.5},
		{name: "string", value: "1"},
		{name: "nil", value: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceToInt32(tt.value)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CoerceToInt32(%v) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCoerceToUint32(t *testing.T) {
	tests := []struct {
		value any
		name  string
		want  uint32
		ok    bool
	}{
		{name: "int", value: 5, want: 5, ok: true},
		{name: "max", value: uint64(math.MaxUint32), want: math.MaxUint32, ok: true},
		{name: "negative", value: -1},
		{name: "overflow", value: uint64(math.MaxUint32) + 1},
		{name: "bool", value: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceToUint32(tt.value)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CoerceToUint32(%v) = (%d, %v), want (%d, %v)", tt.value, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestCoerce(t *testing.T) {
	var x byte
	p := unsafe.Pointer(&x)

	tests := []struct {
		value   any
		name    string
		kind    Kind
		want    Value
		failure errors.Kind
	}{
		{name: "double from int", value: 2, kind: KindDouble, want: Double(2)},
		{name: "double from float32", value: float32(0.5), kind: KindDouble, want: Double(0.5)},
		{name: "bool", value: true, kind: KindBool, want: Bool(true)},
		{name: "string", value: "srgb", kind: KindString, want: String("srgb")},
		{name: "size", value: 1024, kind: KindSize, want: Size(1024)},
		{name: "size from float", value: 1.0, kind: KindSize, failure: errors.KindTypeMismatch},
		{name: "negative size", value: -1, kind: KindSize, failure: errors.KindOverflow},
		{name: "nil pointer", value: nil, kind: KindPointer, want: Null()},
		{name: "pointer", value: p, kind: KindPointer, want: Pointer(p)},
		{name: "go pointer rejected", value: &x, kind: KindPointer, failure: errors.KindTypeMismatch},
		{name: "value passthrough", value: Enum(4), kind: KindEnum, want: Enum(4)},
		{name: "value wrong kind", value: Int32(4), kind: KindEnum, failure: errors.KindTypeMismatch},
		{name: "string for double", value: "x", kind: KindDouble, failure: errors.KindTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, failure := coerce(tt.value, tt.kind)
			if failure != tt.failure {
				t.Fatalf("failure = %q, want %q", failure, tt.failure)
			}
			if failure == "" && got != tt.want {
				t.Errorf("coerce = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != int(kindCount)-1 {
		t.Fatalf("Kinds() = %d kinds, want %d", len(kinds), kindCount-1)
	}
	for _, k := range kinds {
		if !k.Valid() {
			t.Errorf("%s not valid", k)
		}
		if k.String() == "invalid" {
			t.Errorf("kind %d has no name", k)
		}
	}
	if KindInvalid.Valid() || Kind(200).Valid() {
		t.Error("invalid kinds reported valid")
	}
	if !KindOut.IsPointer() || KindDouble.IsPointer() {
		t.Error("IsPointer classification wrong")
	}
}
