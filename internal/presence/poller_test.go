package presence

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
	"github.com/devraikou/portfolio/internal/schedule"
)

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeSource returns whatever was last set with respond. Each Fetch is
// counted.
type fakeSource struct {
	mu    sync.Mutex
	snap  *model.PresenceSnapshot
	err   error
	calls atomic.Int32
}

func (f *fakeSource) respond(snap *model.PresenceSnapshot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap, f.err = snap, err
}

func (f *fakeSource) Fetch(_ context.Context) (*model.PresenceSnapshot, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap, f.err
}

// blockingSource waits for ctx cancellation, then reports success anyway,
// like a response that arrives after teardown.
type blockingSource struct {
	entered chan struct{}
}

func (b *blockingSource) Fetch(ctx context.Context) (*model.PresenceSnapshot, error) {
	close(b.entered)
	<-ctx.Done()
	return snapshotWith(nil), nil
}

func snapshotWith(activities []model.Activity) *model.PresenceSnapshot {
	return &model.PresenceSnapshot{
		UserID:        "263957712507895808",
		Username:      "raikou",
		Discriminator: "0",
		Status:        model.StatusOnline,
		Activities:    activities,
		FetchedAt:     epoch,
	}
}

func gameStartedAgo(d time.Duration) []model.Activity {
	start := epoch.Add(-d).UnixMilli()
	return []model.Activity{{Name: "Factorio", Kind: model.ActivityGame, Start: &start}}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestPoller(t *testing.T, src Source, cfg Config) (*Poller, *schedule.FakeClock) {
	t.Helper()
	clock := schedule.NewFakeClock(epoch)
	p := NewPoller(src, clock, cfg, testLogger())
	t.Cleanup(p.Stop)
	return p, clock
}

func eventuallyState(t *testing.T, p *Poller, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return p.State() == want },
		time.Second, 5*time.Millisecond, "state never became %s", want)
}

// waitForTickers lets the task goroutines register their tickers before
// the test advances the clock.
func waitForTickers(t *testing.T, clock *schedule.FakeClock, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return clock.Tickers() == n },
		time.Second, 5*time.Millisecond, "want %d live tickers", n)
}

func TestPoller_InitialState(t *testing.T) {
	p, _ := newTestPoller(t, &fakeSource{}, DefaultConfig())

	assert.Equal(t, StateLoading, p.State())
	assert.Nil(t, p.Snapshot())
	assert.Equal(t, StateLoading, p.Card().State)
}

func TestPoller_FirstPollImmediate(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(nil), nil)
	p, _ := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())

	eventuallyState(t, p, StateLoaded)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, "raikou", p.Card().Username)
}

func TestPoller_ErrorThenRecovery(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(nil), nil)
	p, clock := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	eventuallyState(t, p, StateLoaded)
	waitForTickers(t, clock, 1)

	src.respond(nil, errors.New("boom"))
	clock.Advance(30 * time.Second)
	eventuallyState(t, p, StateErrored)

	assert.Nil(t, p.Snapshot(), "a failed poll discards the previous snapshot")
	card := p.Card()
	assert.Equal(t, UnavailableMessage, card.Message)
	assert.Empty(t, card.Username)

	src.respond(snapshotWith(nil), nil)
	clock.Advance(30 * time.Second)
	eventuallyState(t, p, StateLoaded)
	assert.NotNil(t, p.Snapshot())
}

func TestPoller_IntervalDoesNotBackOff(t *testing.T) {
	src := &fakeSource{}
	src.respond(nil, errors.New("down"))
	p, clock := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	eventuallyState(t, p, StateErrored)
	waitForTickers(t, clock, 1)

	for i := 2; i <= 4; i++ {
		clock.Advance(30 * time.Second)
		want := int32(i)
		require.Eventually(t, func() bool { return src.calls.Load() == want },
			time.Second, 5*time.Millisecond)
	}
	assert.Equal(t, StateErrored, p.State())
}

func TestPoller_ElapsedComputedOnPoll(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(gameStartedAgo(90*time.Minute)), nil)
	p, _ := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	eventuallyState(t, p, StateLoaded)

	card := p.Card()
	require.NotNil(t, card.Activity)
	assert.True(t, card.Activity.HasElapsed)
	assert.Equal(t, "1h 30m", card.Activity.Elapsed)
	assert.Equal(t, "Playing", card.Activity.Label)
}

func TestPoller_ElapsedTicksBetweenPolls(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(gameStartedAgo(59*time.Minute)), nil)
	cfg := Config{PollInterval: time.Hour, ElapsedInterval: time.Minute}
	p, clock := newTestPoller(t, src, cfg)

	p.Start(context.Background())
	eventuallyState(t, p, StateLoaded)
	waitForTickers(t, clock, 2)
	assert.Equal(t, "59m", p.Card().Activity.Elapsed)

	clock.Advance(time.Minute)
	require.Eventually(t, func() bool { return p.Card().Activity.Elapsed == "1h 0m" },
		time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), src.calls.Load(), "elapsed ticks must not refetch")
}

func TestPoller_ElapsedTaskFollowsActivity(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(gameStartedAgo(time.Minute)), nil)
	p, clock := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	eventuallyState(t, p, StateLoaded)
	waitForTickers(t, clock, 2)

	// No timed activity: only the poll ticker stays alive.
	src.respond(snapshotWith(nil), nil)
	clock.Advance(30 * time.Second)
	waitForTickers(t, clock, 1)
	assert.Nil(t, p.Card().Activity)

	// Failure also cancels elapsed updates.
	src.respond(snapshotWith(gameStartedAgo(time.Minute)), nil)
	clock.Advance(30 * time.Second)
	waitForTickers(t, clock, 2)

	src.respond(nil, errors.New("boom"))
	clock.Advance(30 * time.Second)
	waitForTickers(t, clock, 1)
	assert.Equal(t, StateErrored, p.State())
}

func TestPoller_ActivityWithoutStartHasNoElapsed(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith([]model.Activity{{Name: "YouTube", Kind: model.ActivityWatching}}), nil)
	p, clock := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	eventuallyState(t, p, StateLoaded)
	waitForTickers(t, clock, 1)

	card := p.Card()
	require.NotNil(t, card.Activity)
	assert.False(t, card.Activity.HasElapsed)
	assert.Empty(t, card.Activity.Elapsed)
}

func TestPoller_StopReleasesTimers(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(gameStartedAgo(time.Minute)), nil)
	p, clock := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	eventuallyState(t, p, StateLoaded)
	waitForTickers(t, clock, 2)

	p.Stop()
	assert.Equal(t, 0, clock.Tickers())

	calls := src.calls.Load()
	clock.Advance(10 * time.Minute)
	assert.Never(t, func() bool { return src.calls.Load() != calls },
		50*time.Millisecond, 5*time.Millisecond)

	p.Stop() // idempotent
}

func TestPoller_StopBeforeStart(t *testing.T) {
	p, _ := newTestPoller(t, &fakeSource{}, DefaultConfig())
	p.Stop()
	assert.Equal(t, StateLoading, p.State())
}

func TestPoller_LateResponseIgnored(t *testing.T) {
	src := &blockingSource{entered: make(chan struct{})}
	p, _ := newTestPoller(t, src, DefaultConfig())

	p.Start(context.Background())
	<-src.entered

	p.Stop()
	assert.Equal(t, StateLoading, p.State())
	assert.Nil(t, p.Snapshot())
}

func TestPoller_Subscribe(t *testing.T) {
	src := &fakeSource{}
	src.respond(snapshotWith(nil), nil)
	p, clock := newTestPoller(t, src, DefaultConfig())

	var got atomic.Int32
	unsubscribe := p.Subscribe(func(c Card) {
		if c.State == StateLoaded {
			got.Add(1)
		}
	})

	p.Start(context.Background())
	require.Eventually(t, func() bool { return got.Load() == 1 }, time.Second, 5*time.Millisecond)
	waitForTickers(t, clock, 1)

	unsubscribe()
	clock.Advance(30 * time.Second)
	require.Eventually(t, func() bool { return src.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Never(t, func() bool { return got.Load() != 1 }, 50*time.Millisecond, 5*time.Millisecond)
}
