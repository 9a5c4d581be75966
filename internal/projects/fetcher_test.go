package projects

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devraikou/portfolio/internal/model"
)

type fakeLister struct {
	repos []model.RepositorySummary
	err   error
	// gate, if set, blocks ListRepositories until closed or ctx is done.
	gate  chan struct{}
	calls atomic.Int32
}

func (f *fakeLister) ListRepositories(ctx context.Context) ([]model.RepositorySummary, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.repos, f.err
}

func repo(id int64, desc string, fork bool) model.RepositorySummary {
	r := model.RepositorySummary{ID: id, Name: "repo", CodeURL: "https://github.com/devraikou", IsFork: fork}
	if desc != "" {
		r.Description = &desc
	}
	return r
}

func ids(repos []model.RepositorySummary) []int64 {
	out := make([]int64, 0, len(repos))
	for _, r := range repos {
		out = append(out, r.ID)
	}
	return out
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFilter(t *testing.T) {
	empty := ""
	withEmpty := repo(3, "", false)
	withEmpty.Description = &empty

	in := []model.RepositorySummary{
		repo(1, "one", false),
		repo(2, "fork", true),
		withEmpty,
		repo(4, "", false),
		repo(5, "five", false),
		repo(6, "six", false),
		repo(7, "seven", false),
		repo(8, "eight", false),
		repo(9, "nine", false),
		repo(10, "ten", false),
	}

	assert.Equal(t, []int64{1, 5, 6, 7, 8, 9}, ids(Filter(in, 6)))
	assert.Equal(t, []int64{1, 5}, ids(Filter(in, 2)))
	assert.Equal(t, []int64{1, 5, 6, 7, 8, 9, 10}, ids(Filter(in, 100)))
	assert.Empty(t, Filter(in, 0))
	assert.Empty(t, Filter(nil, 6))
}

func TestFetcher_Success(t *testing.T) {
	lister := &fakeLister{repos: []model.RepositorySummary{repo(1, "a", false), repo(2, "b", true), repo(3, "c", false)}}
	f := NewFetcher(lister, 6, time.Second, testLogger())
	defer f.Close()

	_, ok := f.Peek()
	assert.False(t, ok)

	res := f.Load(context.Background())
	assert.False(t, res.Pending)
	assert.False(t, res.Fallback)
	assert.Empty(t, res.Err)
	assert.Equal(t, []int64{1, 3}, ids(res.Repos))

	peeked, ok := f.Peek()
	assert.True(t, ok)
	assert.Equal(t, res, peeked)
}

func TestFetcher_FailureShowsSamples(t *testing.T) {
	lister := &fakeLister{err: errors.New("github down")}
	f := NewFetcher(lister, 6, time.Second, testLogger())
	defer f.Close()

	res := f.Load(context.Background())
	assert.True(t, res.Fallback)
	assert.Equal(t, "Could not load GitHub repositories", res.Err)
	assert.Equal(t, SampleRepositories(), res.Repos)
}

func TestFetcher_NeverRetries(t *testing.T) {
	lister := &fakeLister{err: errors.New("github down")}
	f := NewFetcher(lister, 6, time.Second, testLogger())
	defer f.Close()

	for i := 0; i < 5; i++ {
		f.Load(context.Background())
	}
	assert.Equal(t, int32(1), lister.calls.Load())
}

func TestFetcher_ConcurrentLoadsShareOneFetch(t *testing.T) {
	lister := &fakeLister{repos: []model.RepositorySummary{repo(1, "a", false)}, gate: make(chan struct{})}
	f := NewFetcher(lister, 6, time.Second, testLogger())
	defer f.Close()

	var wg sync.WaitGroup
	results := make([]Result, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.Load(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool { return lister.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(lister.gate)
	wg.Wait()

	assert.Equal(t, int32(1), lister.calls.Load())
	for _, r := range results {
		assert.Equal(t, []int64{1}, ids(r.Repos))
	}
}

func TestFetcher_CallerGivesUp(t *testing.T) {
	lister := &fakeLister{repos: []model.RepositorySummary{repo(1, "a", false)}, gate: make(chan struct{})}
	f := NewFetcher(lister, 6, time.Second, testLogger())
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res := f.Load(ctx)
	assert.True(t, res.Pending)

	// The fetch is detached from the request and still completes.
	close(lister.gate)
	res = f.Load(context.Background())
	assert.False(t, res.Pending)
	assert.Equal(t, []int64{1}, ids(res.Repos))
}

func TestFetcher_Timeout(t *testing.T) {
	lister := &fakeLister{gate: make(chan struct{})}
	f := NewFetcher(lister, 6, 20*time.Millisecond, testLogger())
	defer f.Close()

	res := f.Load(context.Background())
	assert.True(t, res.Fallback)
	assert.Equal(t, LoadError, res.Err)
}

func TestFetcher_CloseDropsInFlight(t *testing.T) {
	lister := &fakeLister{gate: make(chan struct{})}
	f := NewFetcher(lister, 6, time.Minute, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	f.Load(ctx)

	f.Close()
	res := f.Load(context.Background())
	assert.True(t, res.Pending)
	assert.False(t, res.Fallback)

	_, ok := f.Peek()
	assert.False(t, ok)
}

func TestSampleRepositories(t *testing.T) {
	s := SampleRepositories()
	require.Len(t, s, 3)

	assert.Equal(t, "Sample Project 1", s[0].Name)
	require.NotNil(t, s[0].DemoURL)
	assert.Equal(t, "https://raikou.me", *s[0].DemoURL)
	assert.Nil(t, s[1].DemoURL)
	assert.Equal(t, "CSS", *s[2].PrimaryLanguage)

	for _, r := range s {
		assert.Equal(t, "https://github.com/devraikou", r.CodeURL)
	}

	// Callers get their own copy.
	s[0].Topics[0] = "mutated"
	assert.Equal(t, "react", SampleRepositories()[0].Topics[0])
}

func TestLanguageColor(t *testing.T) {
	assert.Equal(t, "bg-cyan-500", LanguageColor("Go"))
	assert.Equal(t, "bg-purple-500", LanguageColor("C#"))
	assert.Equal(t, "bg-gray-500", LanguageColor("Zig"))
	assert.Equal(t, "bg-gray-500", LanguageColor(""))
}

func TestTopicsPreview(t *testing.T) {
	shown, more := TopicsPreview([]string{"a", "b", "c", "d", "e"}, 3)
	assert.Equal(t, []string{"a", "b", "c"}, shown)
	assert.Equal(t, 2, more)

	shown, more = TopicsPreview([]string{"a", "b"}, 3)
	assert.Equal(t, []string{"a", "b"}, shown)
	assert.Zero(t, more)
}
