// Package resource provides handle tables for values whose lifetime is
// controlled from outside the Go heap.
//
// A handle is a small integer that can be given to native code in place of a
// Go pointer. Native code hands the integer back (for example as the user
// data of a signal callback) and the table resolves it to the Go value again.
// Handle 0 is reserved and always invalid.
//
// # Handle Table
//
// The UnifiedTable maps integer handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(resource.TypeAnchoredBuffer, buf)
//
//	// Remove, running the value's Drop method if it has one
//	value, ok := table.Remove(handle)
//
// # Type Safety
//
// Handles are typed. Every event carries the type ID the handle was inserted
// with, and CountTyped counts live handles of one type:
//
//	n := table.CountTyped(resource.TypeAnchoredBuffer)
//
// # Borrows
//
// Borrow and ReturnBorrow maintain a per-handle count. A handle with
// outstanding borrows cannot be removed; Release reports ErrOutstandingBorrow.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    if e.Type == resource.EventDropped {
//	        log.Printf("handle %d dropped", e.Handle)
//	    }
//	}))
//
// # Handle Reuse
//
// By default a dropped handle goes on a free list and is handed out again.
// Tables whose handles are stored in native memory should be created with
// WithoutReuse, so that a stale handle can never resolve to a newer value.
//
// # Memory Management
//
// Values are not garbage collected while they sit in a table. The owner must
// call Release or Remove to free them.
package resource
