package ecs

const timerEpsilon = 1e-9

// TimerHandle identifies a one-shot timer. The zero handle is never active.
type TimerHandle uint64

type timer struct {
	handle    TimerHandle
	remaining float64
	fn        func()
}

// Timers holds one-shot callbacks advanced by World.Update after all systems
// have run.
type Timers struct {
	next   TimerHandle
	active []timer
}

// Start schedules fn to run once after delay seconds.
func (t *Timers) Start(delay float64, fn func()) TimerHandle {
	if t == nil || fn == nil {
		return 0
	}
	t.next++
	t.active = append(t.active, timer{handle: t.next, remaining: delay, fn: fn})
	return t.next
}

// Cancel stops h. Cancelling an expired or unknown handle is a no-op.
func (t *Timers) Cancel(h TimerHandle) bool {
	if t == nil || h == 0 {
		return false
	}
	for i, tm := range t.active {
		if tm.handle == h {
			t.active = append(t.active[:i], t.active[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Timers) Active(h TimerHandle) bool {
	if t == nil || h == 0 {
		return false
	}
	for _, tm := range t.active {
		if tm.handle == h {
			return true
		}
	}
	return false
}

func (t *Timers) Len() int {
	if t == nil {
		return 0
	}
	return len(t.active)
}

func (t *Timers) advance(dt float64) {
	if t == nil || len(t.active) == 0 {
		return
	}
	var due []timer
	kept := t.active[:0]
	for _, tm := range t.active {
		tm.remaining -= dt
		if tm.remaining <= timerEpsilon {
			due = append(due, tm)
			continue
		}
		kept = append(kept, tm)
	}
	t.active = kept
	for _, tm := range due {
		tm.fn()
	}
}
