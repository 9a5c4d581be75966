package schedule

import (
	"context"
	"sync"
	"time"
)

// Task is a handle to a running periodic job.
type Task struct {
	ticker    Ticker
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// Every calls fn on each tick of interval until ctx is cancelled or Stop is
// called. The first call happens after one interval; callers that want an
// immediate run invoke fn themselves before scheduling.
//
// fn runs on the task's goroutine, one call at a time. It must not call
// Stop on its own task.
func Every(ctx context.Context, clock Clock, interval time.Duration, fn func(now time.Time)) *Task {
	t := &Task{
		ticker: clock.Ticker(interval),
		done:   make(chan struct{}),
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		defer t.ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.done:
				return
			case now := <-t.ticker.Chan():
				// Stop may race with a pending tick; prefer stopping.
				select {
				case <-t.done:
					return
				default:
				}
				fn(now)
			}
		}
	}()

	return t
}

// Stop cancels the task and waits for an in-progress fn call to return.
// It is safe to call more than once and on a nil Task.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.closeOnce.Do(func() {
		close(t.done)
	})
	t.wg.Wait()
}

// Done reports whether the task has been stopped.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
