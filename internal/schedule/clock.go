// Package schedule runs cancellable periodic tasks.
//
// Every periodic job on the site (presence polling, the elapsed-time tick)
// is started through Every and returns a *Task. The owner must call Stop
// when the component is torn down; a Task left running keeps firing into a
// component that no longer exists.
package schedule

import "time"

// Clock abstracts time so tasks can be driven by a fake clock in tests.
type Clock interface {
	Now() time.Time
	Ticker(d time.Duration) Ticker
}

// Ticker abstracts *time.Ticker.
type Ticker interface {
	Chan() <-chan time.Time
	Stop()
}

// RealClock returns a Clock backed by the time package.
func RealClock() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) Ticker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

type realTicker struct {
	t *time.Ticker
}

func (r *realTicker) Chan() <-chan time.Time {
	return r.t.C
}

func (r *realTicker) Stop() {
	r.t.Stop()
}
