package effects

//go:generate mockgen -destination=mock/mock_scheduler.go -package=mockeffects -source=scheduler.go

import (
	"container/heap"
	"time"
)

// Handle cancels a scheduled tick
type Handle interface {
	// Cancel prevents the callback from firing. It returns false if the
	// callback already fired or was already cancelled.
	Cancel() bool
}

// Scheduler runs callbacks after a delay. Callbacks must run on the
// goroutine that owns the engine state; the engine never locks.
type Scheduler interface {
	ScheduleTick(after time.Duration, fn func()) Handle
}

// ManualScheduler is a simulated clock. Nothing fires until Advance is
// called, so timed effects tick only at explicit points (turn boundaries,
// test steps).
type ManualScheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

// NewManualScheduler creates a clock at time zero
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleTick implements Scheduler
func (s *ManualScheduler) ScheduleTick(after time.Duration, fn func()) Handle {
	if after < 0 {
		after = 0
	}
	s.seq++
	t := &timer{
		at:  s.now + after,
		seq: s.seq,
		fn:  fn,
	}
	heap.Push(&s.queue, t)
	return t
}

// Advance moves the clock forward, firing due callbacks in time order
// (ties in scheduling order). Callbacks scheduled while advancing fire in
// the same call when they fall due. Returns the number of callbacks fired.
func (s *ManualScheduler) Advance(d time.Duration) int {
	target := s.now + d
	fired := 0
	for s.queue.Len() > 0 {
		next := s.queue[0]
		if next.at > target {
			break
		}
		heap.Pop(&s.queue)
		if next.cancelled {
			continue
		}
		s.now = next.at
		next.fired = true
		next.fn()
		fired++
	}
	s.now = target
	return fired
}

// Now is the simulated time elapsed since creation
func (s *ManualScheduler) Now() time.Duration {
	return s.now
}

// Pending counts callbacks that are scheduled and not cancelled
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.cancelled {
			n++
		}
	}
	return n
}

type timer struct {
	at        time.Duration
	seq       uint64
	fn        func()
	cancelled bool
	fired     bool
}

func (t *timer) Cancel() bool {
	if t.cancelled || t.fired {
		return false
	}
	t.cancelled = true
	return true
}

type timerQueue []*timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(*timer)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}
