package kwargs

// Kind is the closed set of value kinds an argument may carry.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt32        // int
	KindUint32       // guint
	KindBool         // gboolean
	KindDouble       // double
	KindEnum         // enum values passed as 32-bit unsigned
	KindString       // const char*
	KindPointer      // opaque pointer, including NULL
	KindOut          // pointer to a host-allocated slot the callee writes into
	KindSize         // size_t
	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid: "invalid",
	KindInt32:   "int32",
	KindUint32:  "uint32",
	KindBool:    "bool",
	KindDouble:  "double",
	KindEnum:    "enum",
	KindString:  "string",
	KindPointer: "pointer",
	KindOut:     "out",
	KindSize:    "size",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "invalid"
}

// Valid reports whether k is one of the registered kinds.
func (k Kind) Valid() bool {
	return k > KindInvalid && k < kindCount
}

// IsPointer reports whether values of this kind travel as a machine pointer.
func (k Kind) IsPointer() bool {
	switch k {
	case KindString, KindPointer, KindOut:
		return true
	}
	return false
}

// Kinds returns every registered kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// ExpectedLen returns the number of descriptor entries for a call with the
// given number of positional arguments and present options.
func ExpectedLen(positional, present int) int {
	return positional + 2*present + 1
}
