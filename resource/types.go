package resource

// Handle is an opaque reference to a value in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// Type IDs used by the vips runtime.
const (
	// TypeAnchoredBuffer is a pinned pixel buffer owned by a native image
	// and released by the image's close signal.
	TypeAnchoredBuffer uint32 = iota + 1

	// TypeEncodedBuffer is a pinned encoded file (JPEG, PNG, ...) that a
	// loader may read lazily until the image closes.
	TypeEncodedBuffer

	// TypeBorrowedBuffer is caller-owned memory lent to native images for
	// the duration of one scope.
	TypeBorrowedBuffer
)

// TypeName returns a short name for the built-in type IDs.
func TypeName(typeID uint32) string {
	switch typeID {
	case TypeAnchoredBuffer:
		return "anchored"
	case TypeEncodedBuffer:
		return "encoded"
	case TypeBorrowedBuffer:
		return "borrowed"
	default:
		return "unknown"
	}
}

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventBorrowed
	EventBorrowReturned
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventBorrowed:
		return "borrowed"
	case EventBorrowReturned:
		return "borrow_returned"
	default:
		return "unknown"
	}
}

// Event represents a lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	TypeID uint32
	Type   EventType
}

// Observer receives notifications about lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface. Because funcs are
// not comparable, an ObserverFunc cannot be unsubscribed; use a pointer type
// when Unsubscribe is needed.
type ObserverFunc func(Event)

func (f ObserverFunc) OnResourceEvent(e Event) { f(e) }

// Backend provides the underlying storage mechanism for handles.
type Backend interface {
	// Create stores a value and returns a handle.
	Create(typeID uint32, value any) (Handle, error)

	// Get retrieves a value by handle.
	Get(handle Handle) (any, bool)

	// Drop removes a value and returns (value, true) if its destructor should run.
	// Returns (nil, false) if handle is invalid or has outstanding borrows.
	Drop(handle Handle) (any, bool)

	// Close releases all values held by the backend.
	Close() error
}

// BorrowBackend extends Backend with borrow counting.
type BorrowBackend interface {
	Backend

	// Borrow increments the borrow count for a handle.
	Borrow(handle Handle) bool

	// ReturnBorrow decrements the borrow count for a handle.
	ReturnBorrow(handle Handle) bool

	// Borrows returns the current borrow count.
	Borrows(handle Handle) (uint32, bool)
}

// Table manages values with type information and observer support.
type Table interface {
	// Insert adds a value and returns its handle.
	Insert(typeID uint32, value any) Handle

	// Release drops a value, runs its Drop method and notifies observers.
	Release(handle Handle) (any, error)

	// Remove drops a value and returns (value, true) if found.
	Remove(handle Handle) (any, bool)

	// Borrow records a borrow of handle.
	Borrow(handle Handle) bool

	// ReturnBorrow ends one borrow of handle.
	ReturnBorrow(handle Handle) bool

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of live handles.
	Len() int

	// CountTyped returns the number of live handles of one type.
	CountTyped(typeID uint32) int
}

// Dropper is optionally implemented by values that need cleanup.
type Dropper interface {
	Drop()
}
