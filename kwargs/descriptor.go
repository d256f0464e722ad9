package kwargs

import "strings"

// Role tells what an entry contributes to the argument list.
type Role uint8

const (
	RolePositional Role = iota
	RoleName
	RoleValue
	RoleSentinel
)

// Entry is one (kind, value) slot of a call.
type Entry struct {
	Name  string
	Value Value
	Role  Role
}

// Kind returns the entry's ABI kind.
func (e Entry) Kind() Kind { return e.Value.kind }

// Descriptor is the complete, ordered argument list for one call.
type Descriptor struct {
	Symbol  string
	Entries []Entry
	Fixed   int
	Return  Kind
}

// Len returns the total number of arguments, sentinel included.
func (d *Descriptor) Len() int { return len(d.Entries) }

// Variadic returns the number of arguments after the fixed prefix.
func (d *Descriptor) Variadic() int { return len(d.Entries) - d.Fixed }

// Present returns the number of optional (name, value) pairs.
func (d *Descriptor) Present() int { return (d.Variadic() - 1) / 2 }

// Kinds returns the parallel kind list.
func (d *Descriptor) Kinds() []Kind {
	out := make([]Kind, len(d.Entries))
	for i, e := range d.Entries {
		out[i] = e.Value.kind
	}
	return out
}

// OptionNames returns the present option names in emission order.
func (d *Descriptor) OptionNames() []string {
	var names []string
	for _, e := range d.Entries {
		if e.Role == RoleName {
			names = append(names, e.Name)
		}
	}
	return names
}

// Outs returns the indices of out-slot arguments.
func (d *Descriptor) Outs() []int {
	var idx []int
	for i, e := range d.Entries {
		if e.Value.kind == KindOut {
			idx = append(idx, i)
		}
	}
	return idx
}

// String renders the call shape for logs, e.g. vips_embed(in, out, ..., "extend", enum(1), NULL).
func (d *Descriptor) String() string {
	var b strings.Builder
	b.WriteString(d.Symbol)
	b.WriteByte('(')
	for i, e := range d.Entries {
		if i > 0 {
			b.WriteString(", ")
		}
		switch e.Role {
		case RolePositional:
			b.WriteString(e.Name)
			b.WriteByte('=')
			b.WriteString(e.Value.String())
		case RoleName:
			b.WriteByte('"')
			b.WriteString(e.Name)
			b.WriteByte('"')
		case RoleValue:
			b.WriteString(e.Value.String())
		case RoleSentinel:
			b.WriteString("NULL")
		}
	}
	b.WriteByte(')')
	return b.String()
}
