package sim

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled callback
type TimerID uint64

type timer struct {
	id  TimerID
	due time.Duration
	fn  func()
}

// Scheduler runs delayed callbacks against simulated time.
// Callbacks fire from Advance on the simulation goroutine, ordered by due
// time and then by scheduling order.
type Scheduler struct {
	now    time.Duration
	nextID TimerID
	timers []*timer
}

// NewScheduler creates an empty scheduler at time zero
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once d of simulated time has passed
func (s *Scheduler) After(d time.Duration, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	s.nextID++
	s.timers = append(s.timers, &timer{id: s.nextID, due: s.now + d, fn: fn})
	return s.nextID
}

// Cancel removes a pending timer. It reports whether the timer was pending.
func (s *Scheduler) Cancel(id TimerID) bool {
	for i, t := range s.timers {
		if t.id == id {
			s.timers = append(s.timers[:i], s.timers[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending timer
func (s *Scheduler) CancelAll() {
	s.timers = nil
}

// Pending returns the number of timers waiting to fire
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Advance moves simulated time forward and fires every timer that became due.
// Timers scheduled by a callback fire in the same call if they are already due.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	for {
		t := s.popDue()
		if t == nil {
			return
		}
		t.fn()
	}
}

func (s *Scheduler) popDue() *timer {
	if len(s.timers) == 0 {
		return nil
	}
	sort.SliceStable(s.timers, func(i, j int) bool {
		if s.timers[i].due == s.timers[j].due {
			return s.timers[i].id < s.timers[j].id
		}
		return s.timers[i].due < s.timers[j].due
	})
	t := s.timers[0]
	if t.due > s.now {
		return nil
	}
	s.timers = s.timers[1:]
	return t
}

// Seconds converts a float step in seconds to a Duration
func Seconds(dt float64) time.Duration {
	return time.Duration(dt * float64(time.Second))
}
