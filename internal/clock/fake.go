package clock

import (
	"sync"
	"time"
)

// Fake is a manually advanced Clock for tests.
type Fake struct {
	mu      sync.Mutex
	now     time.Time
	tickers []*fakeTicker
}

// NewFake returns a Fake clock positioned at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) NewTicker(d time.Duration) Ticker {
	if d <= 0 {
		panic("clock: non-positive interval for Fake.NewTicker")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{
		c:      make(chan time.Time),
		period: d,
		next:   f.now.Add(d),
		stop:   make(chan struct{}),
	}
	f.tickers = append(f.tickers, t)
	return t
}

// TickerCount reports how many tickers were created on this clock.
func (f *Fake) TickerCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

// Advance moves the clock forward by d and delivers every tick that falls due
// inside the window, in order. Each delivery blocks until the receiver takes
// it or the ticker is stopped.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now.Add(d)
	tickers := append([]*fakeTicker(nil), f.tickers...)
	f.mu.Unlock()

	for {
		t, due := earliestDue(tickers, target)
		if t == nil {
			break
		}
		f.mu.Lock()
		f.now = due
		f.mu.Unlock()
		t.fire(due)
	}

	f.mu.Lock()
	f.now = target
	f.mu.Unlock()
}

func earliestDue(tickers []*fakeTicker, target time.Time) (*fakeTicker, time.Time) {
	var (
		found *fakeTicker
		when  time.Time
	)
	for _, t := range tickers {
		next, ok := t.due(target)
		if !ok {
			continue
		}
		if found == nil || next.Before(when) {
			found = t
			when = next
		}
	}
	return found, when
}

type fakeTicker struct {
	c      chan time.Time
	period time.Duration

	mu      sync.Mutex
	next    time.Time
	stopped bool
	stop    chan struct{}
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	close(t.stop)
}

func (t *fakeTicker) due(target time.Time) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped || t.next.After(target) {
		return time.Time{}, false
	}
	return t.next, true
}

func (t *fakeTicker) fire(at time.Time) {
	t.mu.Lock()
	t.next = t.next.Add(t.period)
	t.mu.Unlock()
	select {
	case t.c <- at:
	case <-t.stop:
	}
}
