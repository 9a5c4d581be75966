package projects

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/devraikou/portfolio/internal/model"
)

// LoadError is shown above the sample projects when the fetch failed.
const LoadError = "Could not load GitHub repositories"

// Result is the outcome of the one-shot fetch.
type Result struct {
	Repos []model.RepositorySummary `json:"repos"`
	// Err is the visitor-facing error line; empty on success.
	Err string `json:"error,omitempty"`
	// Fallback is true when Repos holds the sample set.
	Fallback bool `json:"fallback"`
	// Pending is true while no result is available yet.
	Pending bool `json:"pending"`
}

// Fetcher runs the repository fetch exactly once and shares its result with
// every caller.
type Fetcher struct {
	lister  Lister
	count   int
	timeout time.Duration
	logger  *slog.Logger

	// root outlives any single request; Close cancels it.
	root   context.Context
	cancel context.CancelFunc

	once   sync.Once
	done   chan struct{}
	mu     sync.RWMutex
	result Result
	ready  bool
}

// NewFetcher creates a Fetcher that keeps the first count qualifying
// repositories. The fetch itself is bounded by timeout.
func NewFetcher(lister Lister, count int, timeout time.Duration, logger *slog.Logger) *Fetcher {
	root, cancel := context.WithCancel(context.Background())
	return &Fetcher{
		lister:  lister,
		count:   count,
		timeout: timeout,
		logger:  logger,
		root:    root,
		cancel:  cancel,
		done:    make(chan struct{}),
		result:  Result{Pending: true},
	}
}

// Load triggers the fetch on first use and waits for its result. Later and
// concurrent calls share that same result and never trigger another fetch.
//
// ctx only bounds the wait; the fetch keeps running if the caller gives up,
// in which case Load returns a pending Result.
func (f *Fetcher) Load(ctx context.Context) Result {
	f.once.Do(func() {
		go f.run()
	})

	select {
	case <-f.done:
		f.mu.RLock()
		defer f.mu.RUnlock()
		return f.result
	case <-ctx.Done():
		return Result{Pending: true}
	}
}

// Peek returns the result if the fetch has completed, without triggering it.
func (f *Fetcher) Peek() (Result, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.result, f.ready
}

// Close cancels an in-flight fetch. Its result, if any, is discarded.
func (f *Fetcher) Close() {
	f.cancel()
}

func (f *Fetcher) run() {
	defer close(f.done)

	ctx := f.root
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(f.root, f.timeout)
		defer cancel()
	}

	start := time.Now()
	repos, err := f.lister.ListRepositories(ctx)

	if f.root.Err() != nil {
		f.logger.Info("repository fetch abandoned on shutdown")
		return
	}

	var res Result
	if err != nil {
		f.logger.Warn("repository fetch failed, showing samples",
			slog.String("error", err.Error()),
			slog.Duration("took", time.Since(start)),
		)
		res = Result{Repos: SampleRepositories(), Err: LoadError, Fallback: true}
	} else {
		res = Result{Repos: Filter(repos, f.count)}
		f.logger.Info("repositories loaded",
			slog.Int("fetched", len(repos)),
			slog.Int("shown", len(res.Repos)),
			slog.Duration("took", time.Since(start)),
		)
	}

	f.mu.Lock()
	f.result = res
	f.ready = true
	f.mu.Unlock()
}

// Filter drops forks and repositories without a description, then keeps
// the first n of the rest in their original order.
func Filter(repos []model.RepositorySummary, n int) []model.RepositorySummary {
	out := make([]model.RepositorySummary, 0, min(len(repos), max(n, 0)))
	for _, r := range repos {
		if len(out) >= n {
			break
		}
		if r.IsFork || r.Description == nil || *r.Description == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
