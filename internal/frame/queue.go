// Package frame provides the "run this before the next repaint" primitive the renderer
// schedules itself with, and a paced driver for hosts without a display.
//
// A Queue is not safe for concurrent use. It is meant to be ticked from the same goroutine
// that requests and cancels frames (the ebiten game loop, or a Pacer).
package frame

import "time"

// Handle identifies a requested frame. The zero Handle is never issued.
type Handle uint64

// Func is a frame callback. ts is the host frame timestamp.
type Func func(ts time.Duration)

type entry struct {
	h  Handle
	fn Func
}

// Queue holds callbacks requested for the next frame.
type Queue struct {
	next    Handle
	entries []entry
	running []entry
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Request schedules fn for the next Tick.
func (q *Queue) Request(fn Func) Handle {
	q.next++
	q.entries = append(q.entries, entry{h: q.next, fn: fn})
	return q.next
}

// Cancel removes a pending callback. Unknown, already-run and zero handles are ignored.
// A callback cancelled while a tick is in progress does not run in that tick.
func (q *Queue) Cancel(h Handle) {
	if h == 0 {
		return
	}
	for i := range q.running {
		if q.running[i].h == h {
			q.running[i].fn = nil
			return
		}
	}
	for i, e := range q.entries {
		if e.h == h {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return
		}
	}
}

// Pending reports whether any callback is waiting for the next Tick.
func (q *Queue) Pending() bool {
	return len(q.entries) > 0
}

// Tick runs the callbacks that were pending when it was called and returns how many ran.
// Callbacks requested from inside a callback wait for the following Tick.
func (q *Queue) Tick(ts time.Duration) int {
	if len(q.entries) == 0 {
		return 0
	}
	q.running = q.entries
	q.entries = nil

	ran := 0
	for i := range q.running {
		fn := q.running[i].fn
		if fn == nil {
			continue
		}
		q.running[i].fn = nil
		fn(ts)
		ran++
	}
	q.running = nil
	return ran
}
