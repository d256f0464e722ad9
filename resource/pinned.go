package resource

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// Pinned holds a Go byte slice pinned in place so its address can be handed
// to native code. Drop unpins it; after that the address must not be used.
type Pinned struct {
	data   []byte
	pinner runtime.Pinner
	drops  atomic.Int32
}

// Pin pins data and returns the holder. data must be non-empty.
func Pin(data []byte) *Pinned {
	p := &Pinned{data: data}
	p.pinner.Pin(&data[0])
	return p
}

// Addr returns the address of the first byte.
func (p *Pinned) Addr() unsafe.Pointer { return unsafe.Pointer(unsafe.SliceData(p.data)) }

// Len returns the length of the pinned slice.
func (p *Pinned) Len() int { return len(p.data) }

// Bytes returns the pinned slice.
func (p *Pinned) Bytes() []byte { return p.data }

// Drop unpins the buffer. Only the first call has an effect.
func (p *Pinned) Drop() {
	if p.drops.Add(1) == 1 {
		p.pinner.Unpin()
	}
}

// Drops returns how many times Drop was called.
func (p *Pinned) Drops() int { return int(p.drops.Load()) }
