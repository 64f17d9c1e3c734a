// Package midi implements the MIDI ingestion path (C5): a single-producer/
// single-consumer ring buffer carrying raw 3-byte messages from a polling
// thread into the engine, a classifier splitting them into note/scene-
// launch/CC/pitch-bend events, and the fixed CC-mapping table from spec.md §6.
// Grounded on clapgo's pkg/event/midi.go status-byte helpers and
// pkg/event/pool.go's allocation-free design.
package midi

import "sync/atomic"

// Message is one raw 3-byte MIDI 1.0 message (unused trailing bytes are
// zero for 2-byte messages like program change).
type Message struct {
	Data [3]byte
	Len  uint8
}

// Ring is a single-producer/single-consumer lock-free ring buffer of
// power-of-two capacity. The MIDI poll thread is the sole producer (Push);
// the engine's block-start ingestion is the sole consumer (Pop/Drain).
// No allocation occurs in Push or Pop.
type Ring struct {
	buf  []Message
	mask uint64
	head atomic.Uint64 // next write index, producer-owned
	tail atomic.Uint64 // next read index, consumer-owned
}

// NewRing creates a ring buffer whose capacity is the next power of two
// >= size (minimum 2).
func NewRing(size int) *Ring {
	capacity := 2
	for capacity < size {
		capacity <<= 1
	}
	return &Ring{
		buf:  make([]Message, capacity),
		mask: uint64(capacity - 1),
	}
}

// Push enqueues a message, returning false if the ring is full (the
// caller — the poll thread — should drop the message rather than block).
func (r *Ring) Push(msg Message) bool {
	head := r.head.Load()
	tail := r.tail.Load()
	if head-tail >= uint64(len(r.buf)) {
		return false
	}
	r.buf[head&r.mask] = msg
	r.head.Store(head + 1)
	return true
}

// Pop dequeues the oldest message, returning ok=false if the ring is empty.
func (r *Ring) Pop() (msg Message, ok bool) {
	tail := r.tail.Load()
	head := r.head.Load()
	if tail >= head {
		return Message{}, false
	}
	msg = r.buf[tail&r.mask]
	r.tail.Store(tail + 1)
	return msg, true
}

// Drain pops every pending message into fn, called once per block from
// engine ingestion. Returns the count drained.
func (r *Ring) Drain(fn func(Message)) int {
	n := 0
	for {
		msg, ok := r.Pop()
		if !ok {
			return n
		}
		fn(msg)
		n++
	}
}

// Len returns an approximate pending-message count (may be stale the
// instant it's read, since the producer can race ahead); for
// diagnostics/metering only.
func (r *Ring) Len() int {
	return int(r.head.Load() - r.tail.Load())
}
