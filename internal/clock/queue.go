package clock

import (
	"container/heap"
	"time"
)

// Timer is a scheduled callback that can be cancelled before it fires.
type Timer interface {
	// Stop cancels the timer. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler schedules deferred callbacks.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// Queue is a Scheduler whose callbacks only run when the owner calls RunDue.
// The page loop calls RunDue once per frame, so timer callbacks never run
// concurrently with a tick.
type Queue struct {
	clock  Clock
	seq    uint64
	timers timerHeap

	firing   bool
	firingAt time.Time
}

// Compile-time check that Queue implements Scheduler.
var _ Scheduler = (*Queue)(nil)

// NewQueue creates an empty queue reading time from c.
func NewQueue(c Clock) *Queue {
	return &Queue{clock: c}
}

// AfterFunc schedules fn to run d after now. Inside a running callback, now
// is the firing deadline of that callback rather than the clock reading.
func (q *Queue) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	base := q.clock.Now()
	if q.firing {
		base = q.firingAt
	}
	q.seq++
	t := &queueTimer{
		queue:    q,
		deadline: base.Add(d),
		seq:      q.seq,
		fn:       fn,
		index:    -1,
	}
	heap.Push(&q.timers, t)
	return t
}

// RunDue runs every callback whose deadline is not after the current time,
// in deadline order (ties in scheduling order). Callbacks scheduled while
// running that are already due run in the same pass. Returns the number of
// callbacks run.
func (q *Queue) RunDue() int {
	now := q.clock.Now()
	ran := 0
	for len(q.timers) > 0 {
		next := q.timers[0]
		if next.deadline.After(now) {
			break
		}
		heap.Pop(&q.timers)
		q.firing = true
		q.firingAt = next.deadline
		next.fn()
		q.firing = false
		ran++
	}
	return ran
}

// Pending returns the number of scheduled callbacks.
func (q *Queue) Pending() int {
	return len(q.timers)
}

type queueTimer struct {
	queue    *Queue
	deadline time.Time
	seq      uint64
	fn       func()
	index    int
}

func (t *queueTimer) Stop() bool {
	if t.index < 0 {
		return false
	}
	heap.Remove(&t.queue.timers, t.index)
	return true
}

// timerHeap orders timers by deadline, then by scheduling sequence.
type timerHeap []*queueTimer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*queueTimer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}
