package kwargs

import (
	"fmt"

	"github.com/wippyai/vips-runtime/errors"
)

// Builder collects positional and optional values for one call.
// The first marshalling defect is kept and returned by Build; later
// calls on a failed builder do nothing.
type Builder struct {
	sig  *Signature
	err  *errors.Error
	args []Value
	opts []Value
	set  []bool
}

// Arg appends the next positional value.
func (b *Builder) Arg(v Value) *Builder {
	if b.err != nil {
		return b
	}
	i := len(b.args)
	if i >= len(b.sig.Params) {
		b.err = errors.ShapeMismatch(b.sig.Symbol,
			fmt.Sprintf("too many positional arguments, want %d", len(b.sig.Params)))
		return b
	}
	p := b.sig.Params[i]
	if v.kind != p.Kind {
		b.err = errors.New(errors.PhaseMarshal, errors.KindShapeMismatch).
			Op(b.sig.Symbol).
			Option(p.Name).
			Value(v.kind.String()).
			Detail("positional %d wants %s, got %s", i, p.Kind, v.kind).
			Build()
		return b
	}
	b.args = append(b.args, v)
	return b
}

// ArgAny appends the next positional value, coercing value to the declared
// kind of that position with the same range checks as Set.
func (b *Builder) ArgAny(value any) *Builder {
	if b.err != nil {
		return b
	}
	i := len(b.args)
	if i >= len(b.sig.Params) {
		return b.Arg(Value{})
	}
	p := b.sig.Params[i]
	v, failure := coerce(value, p.Kind)
	switch failure {
	case "":
	case errors.KindOverflow:
		b.err = errors.Overflow(b.sig.Symbol, p.Name, value, p.Kind.String())
		return b
	default:
		b.err = errors.TypeMismatch(b.sig.Symbol, p.Name, value, p.Kind.String())
		return b
	}
	return b.Arg(v)
}

// Set marks a declared option present, coercing value to its declared kind.
func (b *Builder) Set(name string, value any) *Builder {
	if b.err != nil {
		return b
	}
	p, i, ok := b.sig.Option(name)
	if !ok {
		b.err = errors.UnknownOption(b.sig.Symbol, name)
		return b
	}
	v, failure := coerce(value, p.Kind)
	switch failure {
	case "":
	case errors.KindOverflow:
		b.err = errors.Overflow(b.sig.Symbol, name, value, p.Kind.String())
		return b
	default:
		b.err = errors.TypeMismatch(b.sig.Symbol, name, value, p.Kind.String())
		return b
	}
	b.opts[i] = v
	b.set[i] = true
	return b
}

// Unset marks a declared option absent again.
func (b *Builder) Unset(name string) *Builder {
	if b.err != nil {
		return b
	}
	_, i, ok := b.sig.Option(name)
	if !ok {
		b.err = errors.UnknownOption(b.sig.Symbol, name)
		return b
	}
	b.opts[i] = Value{}
	b.set[i] = false
	return b
}

// Opt sets name only when v is non-nil.
func Opt[T any](b *Builder, name string, v *T) *Builder {
	if v == nil {
		return b
	}
	return b.Set(name, *v)
}

// Err returns the first marshalling defect, if any.
func (b *Builder) Err() error {
	if b.err == nil {
		return nil
	}
	return b.err
}

// Present returns the number of options currently set.
func (b *Builder) Present() int {
	n := 0
	for _, s := range b.set {
		if s {
			n++
		}
	}
	return n
}

// Build produces the descriptor. It fails if a defect was recorded or the
// positional prefix is incomplete.
func (b *Builder) Build() (*Descriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.args) != len(b.sig.Params) {
		return nil, errors.ShapeMismatch(b.sig.Symbol,
			fmt.Sprintf("got %d positional arguments, want %d", len(b.args), len(b.sig.Params)))
	}

	present := b.Present()
	entries := make([]Entry, 0, ExpectedLen(len(b.args), present))
	for i, v := range b.args {
		entries = append(entries, Entry{Name: b.sig.Params[i].Name, Value: v, Role: RolePositional})
	}
	for i, o := range b.sig.Options {
		if !b.set[i] {
			continue
		}
		entries = append(entries,
			Entry{Name: o.Name, Value: String(o.Name), Role: RoleName},
			Entry{Name: o.Name, Value: b.opts[i], Role: RoleValue},
		)
	}
	entries = append(entries, Entry{Value: Null(), Role: RoleSentinel})

	return &Descriptor{
		Symbol:  b.sig.Symbol,
		Return:  b.sig.Return,
		Fixed:   len(b.args),
		Entries: entries,
	}, nil
}
