package kwargs

import (
	stderrors "errors"
	"math"
	"reflect"
	"testing"
	"unsafe"

	"github.com/wippyai/vips-runtime/errors"
)

type testSize int

const testSizeForce testSize = 3

func thumbnailSig(t *testing.T) *Signature {
	t.Helper()
	sig, err := NewSignature("vips_thumbnail_image", KindInt32,
		[]Param{{Name: "in", Kind: KindPointer}, {Name: "out", Kind: KindOut}, {Name: "width", Kind: KindInt32}},
		Param{Name: "height", Kind: KindInt32},
		Param{Name: "size", Kind: KindEnum},
		Param{Name: "auto_rotate", Kind: KindBool},
		Param{Name: "crop", Kind: KindEnum},
		Param{Name: "linear", Kind: KindBool},
		Param{Name: "import_profile", Kind: KindString},
		Param{Name: "export_profile", Kind: KindString},
		Param{Name: "intent", Kind: KindEnum},
	)
	if err != nil {
		t.Fatalf("NewSignature: %v", err)
	}
	return sig
}

func withPositional(sig *Signature) *Builder {
	var img byte
	return sig.NewCall().
		Arg(Pointer(unsafe.Pointer(&img))).
		Arg(Out()).
		Arg(Int32(234))
}

func TestBuild_LengthLaw(t *testing.T) {
	sig := thumbnailSig(t)

	tests := []struct {
		set  map[string]any
		name string
	}{
		{name: "no options", set: nil},
		{name: "one int", set: map[string]any{"height": 123}},
		{name: "enum and bool", set: map[string]any{"size": testSizeForce, "linear": true}},
		{name: "strings", set: map[string]any{"import_profile": "srgb", "export_profile": "p3"}},
		{name: "all", set: map[string]any{
			"height": 1, "size": 0, "auto_rotate": false, "crop": uint32(2),
			"linear": true, "import_profile": "a", "export_profile": "b", "intent": 1,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := withPositional(sig)
			for k, v := range tt.set {
				b.Set(k, v)
			}
			d, err := b.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			want := ExpectedLen(len(sig.Params), len(tt.set))
			if d.Len() != want {
				t.Fatalf("Len = %d, want %d", d.Len(), want)
			}
			if d.Present() != len(tt.set) {
				t.Errorf("Present = %d, want %d", d.Present(), len(tt.set))
			}
			if d.Fixed != 3 {
				t.Errorf("Fixed = %d, want 3", d.Fixed)
			}
			last := d.Entries[d.Len()-1]
			if last.Role != RoleSentinel || !last.Value.IsNull() || last.Kind() != KindPointer {
				t.Errorf("last entry = %+v, want NULL pointer sentinel", last)
			}
		})
	}
}

func TestBuild_AbsentOptionsContributeNothing(t *testing.T) {
	sig := thumbnailSig(t)
	d, err := withPositional(sig).Build()
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range d.Entries {
		if e.Role == RoleName || e.Role == RoleValue {
			t.Fatalf("unexpected option entry %+v", e)
		}
	}
	want := []Kind{KindPointer, KindOut, KindInt32, KindPointer}
	if got := d.Kinds(); !reflect.DeepEqual(got, want) {
		t.Errorf("Kinds = %v, want %v", got, want)
	}
}

func TestBuild_DeclaredOrder(t *testing.T) {
	sig := thumbnailSig(t)
	d, err := withPositional(sig).
		Set("intent", 1).
		Set("linear", true).
		Set("height", 123).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"height", "linear", "intent"}
	if got := d.OptionNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("OptionNames = %v, want %v", got, want)
	}

	kinds := d.Kinds()
	wantKinds := []Kind{
		KindPointer, KindOut, KindInt32,
		KindString, KindInt32,
		KindString, KindBool,
		KindString, KindEnum,
		KindPointer,
	}
	if !reflect.DeepEqual(kinds, wantKinds) {
		t.Errorf("Kinds = %v, want %v", kinds, wantKinds)
	}

	if d.Entries[3].Value.Str() != "height" || d.Entries[4].Value.Int32() != 123 {
		t.Errorf("height pair = %v %v", d.Entries[3].Value, d.Entries[4].Value)
	}
}

func TestBuild_DisjointSubsets(t *testing.T) {
	sig := thumbnailSig(t)
	a, err := withPositional(sig).Set("height", 10).Build()
	if err != nil {
		t.Fatal(err)
	}
	b, err := withPositional(sig).Set("crop", 2).Build()
	if err != nil {
		t.Fatal(err)
	}
	a.Entries[4].Value = Int32(99)
	if b.Entries[4].Value.Kind() != KindEnum || b.Entries[4].Value.Uint32() != 2 {
		t.Errorf("descriptors share storage: %v", b.Entries[4].Value)
	}
}

func TestBuild_Unset(t *testing.T) {
	sig := thumbnailSig(t)
	d, err := withPositional(sig).Set("height", 10).Unset("height").Build()
	if err != nil {
		t.Fatal(err)
	}
	if d.Present() != 0 {
		t.Errorf("Present = %d, want 0", d.Present())
	}
}

func TestBuild_Opt(t *testing.T) {
	sig := thumbnailSig(t)
	height := 50
	var crop *uint32
	profile := "cmyk"

	b := withPositional(sig)
	Opt(b, "height", &height)
	Opt(b, "crop", crop)
	Opt(b, "import_profile", &profile)
	d, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	if got := d.OptionNames(); !reflect.DeepEqual(got, []string{"height", "import_profile"}) {
		t.Errorf("OptionNames = %v", got)
	}
}

func TestBuild_Defects(t *testing.T) {
	sig := thumbnailSig(t)

	tests := []struct {
		build func() (*Descriptor, error)
		name  string
		kind  errors.Kind
	}{
		{
			name:  "unknown option",
			build: func() (*Descriptor, error) { return withPositional(sig).Set("nope", 1).Build() },
			kind:  errors.KindNotFound,
		},
		{
			name:  "string for int",
			build: func() (*Descriptor, error) { return withPositional(sig).Set("height", "tall").Build() },
			kind:  errors.KindTypeMismatch,
		},
		{
			name:  "int overflow",
			build: func() (*Descriptor, error) { return withPositional(sig).Set("height", int64(1)<<40).Build() },
			kind:  errors.KindOverflow,
		},
		{
			name:  "negative enum",
			build: func() (*Descriptor, error) { return withPositional(sig).Set("size", -1).Build() },
			kind:  errors.KindOverflow,
		},
		{
			name:  "fractional int",
			build: func() (*Descriptor, error) { return withPositional(sig).Set("height", 1.5).Build() },
			kind:  errors.KindTypeMismatch,
		},
		{
			name:  "int for bool",
			build: func() (*Descriptor, error) { return withPositional(sig).Set("linear", 1).Build() },
			kind:  errors.KindTypeMismatch,
		},
		{
			name:  "missing positional",
			build: func() (*Descriptor, error) { return sig.NewCall().Arg(Null()).Build() },
			kind:  errors.KindShapeMismatch,
		},
		{
			name:  "wrong positional kind",
			build: func() (*Descriptor, error) { return sig.NewCall().Arg(Int32(1)).Build() },
			kind:  errors.KindShapeMismatch,
		},
		{
			name:  "too many positional",
			build: func() (*Descriptor, error) { return withPositional(sig).Arg(Int32(1)).Build() },
			kind:  errors.KindShapeMismatch,
		},
		{
			name:  "invalid value",
			build: func() (*Descriptor, error) { return sig.NewCall().Arg(Value{}).Build() },
			kind:  errors.KindShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.build()
			if d != nil {
				t.Fatalf("expected no descriptor, got %v", d)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) {
				t.Fatalf("expected *errors.Error, got %v", err)
			}
			if e.Phase != errors.PhaseMarshal || e.Kind != tt.kind {
				t.Errorf("got [%s] %s, want [marshal] %s", e.Phase, e.Kind, tt.kind)
			}
		})
	}
}

func TestBuild_ArgAny(t *testing.T) {
	sig := thumbnailSig(t)
	var img byte
	start := func() *Builder {
		return sig.NewCall().Arg(Pointer(unsafe.Pointer(&img))).Arg(Out())
	}

	d, err := start().ArgAny(234).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := d.Entries[2].Value; got != Int32(234) {
		t.Errorf("width = %v, want int32(234)", got)
	}

	tests := []struct {
		value any
		name  string
		kind  errors.Kind
	}{
		{name: "wraps past int32", value: int64(1)<<32 + 16, kind: errors.KindOverflow},
		{name: "below int32", value: int64(math.MinInt32) - 1, kind: errors.KindOverflow},
		{name: "fraction", value: 1.5, kind: errors.KindTypeMismatch},
		{name: "string", value: "234", kind: errors.KindTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := start().ArgAny(tt.value).Build()
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Phase != errors.PhaseMarshal || e.Kind != tt.kind {
				t.Fatalf("err = %v, want [marshal] %s", err, tt.kind)
			}
			if e.Option != "width" {
				t.Errorf("Option = %q, want width", e.Option)
			}
		})
	}

	if _, err := withPositional(sig).ArgAny(1).Build(); err == nil {
		t.Error("expected shape mismatch for extra positional")
	}
}

func TestBuild_FirstDefectWins(t *testing.T) {
	sig := thumbnailSig(t)
	b := withPositional(sig).Set("nope", 1).Set("height", "tall")
	var e *errors.Error
	if !stderrors.As(b.Err(), &e) || e.Kind != errors.KindNotFound {
		t.Fatalf("Err = %v, want unknown option", b.Err())
	}
}

func TestNewSignature_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		symbol  string
		ret     Kind
		params  []Param
		options []Param
	}{
		{name: "empty symbol", ret: KindInt32},
		{name: "bad return", symbol: "f", ret: KindDouble},
		{name: "invalid positional", symbol: "f", ret: KindInt32, params: []Param{{Name: "x"}}},
		{name: "unnamed option", symbol: "f", ret: KindInt32, options: []Param{{Kind: KindInt32}}},
		{name: "out option", symbol: "f", ret: KindInt32, options: []Param{{Name: "o", Kind: KindOut}}},
		{name: "duplicate option", symbol: "f", ret: KindInt32, options: []Param{
			{Name: "a", Kind: KindInt32}, {Name: "a", Kind: KindBool},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSignature(tt.symbol, tt.ret, tt.params, tt.options...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestMustSignature_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustSignature("", KindInt32, nil)
}

func TestDescriptor_String(t *testing.T) {
	sig := MustSignature("vips_embed", KindInt32,
		[]Param{{Name: "in", Kind: KindPointer}, {Name: "out", Kind: KindOut}},
		Param{Name: "extend", Kind: KindEnum},
	)
	d, err := sig.NewCall().Arg(Null()).Arg(Out()).Set("extend", 1).Build()
	if err != nil {
		t.Fatal(err)
	}
	want := `vips_embed(in=pointer(NULL), out=out, "extend", enum(1), NULL)`
	if got := d.String(); got != want {
		t.Errorf("String = %s, want %s", got, want)
	}
	if outs := d.Outs(); !reflect.DeepEqual(outs, []int{1}) {
		t.Errorf("Outs = %v", outs)
	}
}
