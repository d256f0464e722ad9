package kwargs

import (
	"fmt"
)

// Param names one positional or optional parameter and its kind.
type Param struct {
	Name string
	Kind Kind
}

// Signature is the static shape of one native entry point.
type Signature struct {
	index   map[string]int
	Symbol  string
	Params  []Param
	Options []Param
	Return  Kind
}

// NewSignature validates and indexes a signature. Options are emitted in the
// order given here.
func NewSignature(symbol string, ret Kind, params []Param, options ...Param) (*Signature, error) {
	if symbol == "" {
		return nil, fmt.Errorf("signature: empty symbol")
	}
	if ret != KindInt32 && ret != KindPointer {
		return nil, fmt.Errorf("signature %s: unsupported return kind %s", symbol, ret)
	}
	for i, p := range params {
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("signature %s: positional %d (%s) has invalid kind", symbol, i, p.Name)
		}
	}
	index := make(map[string]int, len(options))
	for i, o := range options {
		if o.Name == "" {
			return nil, fmt.Errorf("signature %s: option %d has no name", symbol, i)
		}
		if !o.Kind.Valid() || o.Kind == KindOut {
			return nil, fmt.Errorf("signature %s: option %q has unsupported kind %s", symbol, o.Name, o.Kind)
		}
		if _, dup := index[o.Name]; dup {
			return nil, fmt.Errorf("signature %s: duplicate option %q", symbol, o.Name)
		}
		index[o.Name] = i
	}
	return &Signature{
		Symbol:  symbol,
		Params:  params,
		Options: options,
		Return:  ret,
		index:   index,
	}, nil
}

// MustSignature is like NewSignature but panics on a malformed declaration.
// Catalogue declarations are package-level, so a defect fails at init.
func MustSignature(symbol string, ret Kind, params []Param, options ...Param) *Signature {
	s, err := NewSignature(symbol, ret, params, options...)
	if err != nil {
		panic("kwargs: " + err.Error())
	}
	return s
}

// Option returns the declared option and its position in the declared order.
func (s *Signature) Option(name string) (Param, int, bool) {
	i, ok := s.index[name]
	if !ok {
		return Param{}, -1, false
	}
	return s.Options[i], i, true
}

// NewCall starts building a descriptor for one invocation.
func (s *Signature) NewCall() *Builder {
	return &Builder{
		sig:  s,
		args: make([]Value, 0, len(s.Params)),
		opts: make([]Value, len(s.Options)),
		set:  make([]bool, len(s.Options)),
	}
}
