package presence

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devraikou/portfolio/internal/model"
	"github.com/devraikou/portfolio/internal/schedule"
)

// Config controls the poller's cadence.
type Config struct {
	// PollInterval is the time between presence fetches.
	PollInterval time.Duration
	// ElapsedInterval is how often the activity's elapsed time is recomputed
	// between polls.
	ElapsedInterval time.Duration
	// FetchTimeout bounds a single fetch. Zero means no extra bound.
	FetchTimeout time.Duration
}

// DefaultConfig polls every 30 seconds and refreshes elapsed time every minute.
func DefaultConfig() Config {
	return Config{
		PollInterval:    30 * time.Second,
		ElapsedInterval: time.Minute,
		FetchTimeout:    10 * time.Second,
	}
}

// Poller keeps the latest presence card up to date.
//
// It starts in StateLoading. Every poll replaces the snapshot on success
// (StateLoaded) or discards it on failure (StateErrored). Polling continues
// on the same fixed interval in either state, so an outage recovers on its
// own at the next tick.
type Poller struct {
	source Source
	clock  schedule.Clock
	cfg    Config
	logger *slog.Logger

	mu       sync.RWMutex
	state    State
	snapshot *model.PresenceSnapshot
	elapsed  string

	// pollMu serialises polls so an initial fetch and the first tick never
	// race to write the snapshot.
	pollMu      sync.Mutex
	elapsedMu   sync.Mutex
	elapsedTask *schedule.Task

	subsMu  sync.Mutex
	subs    map[int]func(Card)
	nextSub int

	ctx       context.Context
	cancel    context.CancelFunc
	pollTask  *schedule.Task
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
}

// NewPoller creates a Poller. It does nothing until Start is called.
func NewPoller(source Source, clock schedule.Clock, cfg Config, logger *slog.Logger) *Poller {
	if clock == nil {
		clock = schedule.RealClock()
	}
	return &Poller{
		source: source,
		clock:  clock,
		cfg:    cfg,
		logger: logger,
		state:  StateLoading,
		subs:   make(map[int]func(Card)),
	}
}

// Start issues the first fetch in the background and schedules the rest.
// Calling Start more than once has no effect.
func (p *Poller) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		p.ctx, p.cancel = context.WithCancel(ctx)

		p.logger.Info("presence poller starting",
			slog.Duration("interval", p.cfg.PollInterval),
			slog.Duration("elapsedInterval", p.cfg.ElapsedInterval),
		)

		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			p.poll()
		}()

		p.pollTask = schedule.Every(p.ctx, p.clock, p.cfg.PollInterval, func(time.Time) {
			p.poll()
		})
	})
}

// Stop cancels the poll timer, the elapsed-time timer and any in-flight
// fetch, then waits for them to exit. Safe to call more than once, and
// before Start.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
		}
		p.pollTask.Stop()
		p.wg.Wait()
		p.setElapsedTask(false)

		p.subsMu.Lock()
		p.subs = make(map[int]func(Card))
		p.subsMu.Unlock()

		p.logger.Info("presence poller stopped")
	})
}

// State returns the current lifecycle state.
func (p *Poller) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Snapshot returns the latest successful snapshot, or nil if the last poll
// failed or none has completed yet.
func (p *Poller) Snapshot() *model.PresenceSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Card builds the card for the current state.
func (p *Poller) Card() Card {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return BuildCard(p.state, p.snapshot, p.elapsed)
}

// Subscribe registers fn to receive every new card. The returned function
// removes the subscription. fn is called from poller goroutines and must
// not block.
func (p *Poller) Subscribe(fn func(Card)) (unsubscribe func()) {
	p.subsMu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.subsMu.Unlock()

	return func() {
		p.subsMu.Lock()
		delete(p.subs, id)
		p.subsMu.Unlock()
	}
}

func (p *Poller) poll() {
	p.pollMu.Lock()
	defer p.pollMu.Unlock()

	if p.ctx.Err() != nil {
		return
	}

	ctx := p.ctx
	if p.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(p.ctx, p.cfg.FetchTimeout)
		defer cancel()
	}

	snap, err := p.source.Fetch(ctx)

	// A response that lands after Stop belongs to a torn-down widget.
	if p.ctx.Err() != nil {
		return
	}

	if err != nil {
		p.logger.Warn("presence poll failed", slog.String("error", err.Error()))

		p.mu.Lock()
		p.state = StateErrored
		p.snapshot = nil
		p.elapsed = ""
		p.mu.Unlock()

		p.setElapsedTask(false)
		p.notify()
		return
	}

	elapsed, timed := elapsedFor(snap, p.clock.Now())

	p.mu.Lock()
	p.state = StateLoaded
	p.snapshot = snap
	p.elapsed = elapsed
	p.mu.Unlock()

	p.logger.Debug("presence poll succeeded",
		slog.String("status", string(snap.Status)),
		slog.Int("activities", len(snap.Activities)),
	)

	p.setElapsedTask(timed)
	p.notify()
}

// setElapsedTask starts the elapsed-time task if running is true and none
// is active, or stops the active one if running is false. A running task is
// left alone across polls so its cadence is not reset.
func (p *Poller) setElapsedTask(running bool) {
	p.elapsedMu.Lock()
	defer p.elapsedMu.Unlock()

	switch {
	case running && p.elapsedTask == nil:
		if p.ctx.Err() != nil {
			return
		}
		p.elapsedTask = schedule.Every(p.ctx, p.clock, p.cfg.ElapsedInterval, p.tickElapsed)
	case !running && p.elapsedTask != nil:
		p.elapsedTask.Stop()
		p.elapsedTask = nil
	}
}

func (p *Poller) tickElapsed(now time.Time) {
	p.mu.Lock()
	elapsed, ok := elapsedFor(p.snapshot, now)
	if !ok {
		p.mu.Unlock()
		return
	}
	p.elapsed = elapsed
	p.mu.Unlock()

	p.notify()
}

func (p *Poller) notify() {
	card := p.Card()

	p.subsMu.Lock()
	fns := make([]func(Card), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subsMu.Unlock()

	for _, fn := range fns {
		fn(card)
	}
}
