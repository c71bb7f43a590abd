package telemetry

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Update) Update {
	t.Helper()
	select {
	case u, ok := <-ch:
		require.True(t, ok, "channel closed")
		return u
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}

func TestPoller_Success(t *testing.T) {
	var gotURL string
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		gotURL = url
		return []Metric{{Label: "CPU", Value: "40"}}, nil
	})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Update, 1)
	go NewPoller(src, "10.0.0.2", WithInterval(time.Hour), WithClock(func() time.Time { return fixed })).Run(ctx, out)

	u := recv(t, out)
	assert.True(t, u.OK())
	assert.Equal(t, StatusConnected, u.Status)
	assert.Equal(t, []Metric{{Label: "CPU", Value: "40"}}, u.Readings)
	assert.Equal(t, fixed, u.At)
	assert.Equal(t, "http://10.0.0.2:8085/api/data", gotURL)
}

func TestPoller_FailureHasNoReadings(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		return nil, errors.New(errors.ErrFetch, "down", "")
	})
	log := logger.NewBufferLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Update, 1)
	go NewPoller(src, "10.0.0.2", WithInterval(time.Hour), WithLogger(log)).Run(ctx, out)

	u := recv(t, out)
	assert.False(t, u.OK())
	assert.Nil(t, u.Readings)
	assert.Equal(t, errors.StatusConnecting, u.Status)
	assert.True(t, log.HasLevel("debug"))
}

func TestPoller_InvalidEndpointKeepsPolling(t *testing.T) {
	var calls atomic.Int32
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		calls.Add(1)
		return nil, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Update, 1)
	go NewPoller(src, "bad host", WithInterval(time.Millisecond)).Run(ctx, out)

	for i := 0; i < 3; i++ {
		u := recv(t, out)
		assert.Equal(t, errors.StatusInvalidEndpoint, u.Status)
	}
	assert.Zero(t, calls.Load(), "source must not be called for an invalid address")
}

func TestPoller_IntervalFollowsCompletion(t *testing.T) {
	var mu sync.Mutex
	var starts, ends []time.Time
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		mu.Lock()
		starts = append(starts, time.Now())
		mu.Unlock()
		time.Sleep(30 * time.Millisecond)
		mu.Lock()
		ends = append(ends, time.Now())
		mu.Unlock()
		return []Metric{}, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := make(chan Update, 1)
	go NewPoller(src, "h:1", WithInterval(40*time.Millisecond)).Run(ctx, out)

	recv(t, out)
	recv(t, out)
	cancel()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(starts), 2)
	gap := starts[1].Sub(ends[0])
	assert.GreaterOrEqual(t, gap, 40*time.Millisecond, "next attempt must wait a full interval after the previous one finished")
}

func TestPoller_CancelStopsRun(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Update, 1)
	done := make(chan struct{})
	go func() {
		NewPoller(src, "h:1").Run(ctx, out)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Empty(t, out, "cancelled attempt must not publish")
}
