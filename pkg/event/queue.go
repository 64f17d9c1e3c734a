package event

// Queue is a block-scoped, sample-ordered event list. Processors read
// in-events from one Queue and append to another for out-events, per the
// uniform C3 processor contract (plugin.Block.InEvents/OutEvents). Capacity
// is preallocated at construction, so appending inside the render path does
// not allocate until a block pushes more events than that capacity; Reset
// keeps the (possibly grown) backing array for the next block.
type Queue struct {
	events []Event
}

// NewQueue creates a queue pre-sized for typical per-block event bursts.
func NewQueue(capacity int) *Queue {
	return &Queue{events: make([]Event, 0, capacity)}
}

// Len returns the number of queued events.
func (q *Queue) Len() int { return len(q.events) }

// At returns the event at index i.
func (q *Queue) At(i int) Event { return q.events[i] }

// Push appends an event, sample-offset order is the caller's responsibility
// (events are applied in Header.Time order within a block per spec).
func (q *Queue) Push(e Event) { q.events = append(q.events, e) }

// Reset empties the queue for reuse on the next block without freeing the
// backing array.
func (q *Queue) Reset() { q.events = q.events[:0] }

// Processor bundles the in/out event queues and a pool used to avoid
// allocating event structs on the audio thread; events are taken from the
// pool when building a burst and returned once consumed.
type Processor struct {
	in   *Queue
	out  *Queue
	pool *Pool
}

// NewEventProcessor creates a Processor over fresh in/out queues, replacing
// the teacher's cgo-backed constructor of the same name (there is no C event
// list here — callers push directly onto Go queues).
func NewEventProcessor(capacity int) *Processor {
	return &Processor{
		in:   NewQueue(capacity),
		out:  NewQueue(capacity),
		pool: NewPool(),
	}
}

// In returns the input event queue for this block.
func (p *Processor) In() *Queue { return p.in }

// Out returns the output event queue for this block.
func (p *Processor) Out() *Queue { return p.out }

// GetPool returns the event struct pool backing this processor.
func (p *Processor) GetPool() *Pool { return p.pool }

// ResetBlock clears both queues for the next block.
func (p *Processor) ResetBlock() {
	p.in.Reset()
	p.out.Reset()
}

// PushNoteEnd appends a note-end event to the output queue, signalling the
// host (or, here, the voice manager's caller) that a note ID has fully
// decayed and its resources may be reclaimed.
func (p *Processor) PushNoteEnd(e *NoteEvent, time uint32) bool {
	if p.out == nil || e == nil {
		return false
	}
	e.Header.Type = uint16(TypeNoteEnd)
	e.Header.Time = time
	p.out.Push(e)
	return true
}

// PushOutputEvent appends a pre-built note event to the output queue
// immediately (time offset 0).
func (p *Processor) PushOutputEvent(e *NoteEvent) bool {
	if p.out == nil || e == nil {
		return false
	}
	e.Header.Time = 0
	p.out.Push(e)
	return true
}
