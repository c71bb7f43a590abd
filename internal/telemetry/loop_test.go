package telemetry

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoop_StartRestartGenerations(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		return []Metric{{Label: url}}, nil
	})
	loop := NewLoop(src, WithInterval(time.Hour))
	defer loop.Close()

	gen1, ch1, err := loop.Start(context.Background(), "10.0.0.1")
	require.NoError(t, err)
	u := recv(t, ch1)
	assert.Equal(t, gen1, u.Generation)

	gen2, ch2, err := loop.Start(context.Background(), "10.0.0.2")
	require.NoError(t, err)
	assert.Greater(t, gen2, gen1)
	assert.Equal(t, gen2, loop.Generation())
	assert.Equal(t, "10.0.0.2", loop.Address())

	u = recv(t, ch2)
	assert.Equal(t, gen2, u.Generation)
	assert.Contains(t, u.Readings[0].Label, "10.0.0.2")

	// Old poller exits and closes its channel.
	select {
	case _, ok := <-ch1:
		if ok {
			_, ok = <-ch1
		}
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("old channel not closed")
	}
}

func TestLoop_HungFetchDoesNotBlockNewEndpoint(t *testing.T) {
	hang := make(chan struct{})
	defer close(hang)

	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		if strings.Contains(url, "slow") {
			<-hang
			return nil, nil
		}
		return []Metric{{Label: "fast"}}, nil
	})
	loop := NewLoop(src, WithInterval(time.Hour))
	defer loop.Close()

	_, _, err := loop.Start(context.Background(), "slow")
	require.NoError(t, err)

	gen, ch, err := loop.Start(context.Background(), "fast")
	require.NoError(t, err)

	u := recv(t, ch)
	assert.Equal(t, gen, u.Generation)
	assert.Equal(t, "fast", u.Readings[0].Label)
}

func TestLoop_StopThenStart(t *testing.T) {
	src := SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		return []Metric{}, nil
	})
	loop := NewLoop(src, WithInterval(time.Hour))
	defer loop.Close()

	gen1, _, err := loop.Start(context.Background(), "h:1")
	require.NoError(t, err)
	assert.True(t, loop.Running())

	loop.Stop()
	assert.False(t, loop.Running())
	assert.Empty(t, loop.Address())
	assert.NotEqual(t, gen1, loop.Generation(), "stop must invalidate in-flight updates")

	_, ch, err := loop.Start(context.Background(), "h:1")
	require.NoError(t, err)
	recv(t, ch)
}

func TestLoop_CloseIsFinal(t *testing.T) {
	loop := NewLoop(SourceFunc(func(ctx context.Context, url string) ([]Metric, error) {
		return nil, nil
	}))
	loop.Close()
	loop.Close()

	_, _, err := loop.Start(context.Background(), "h:1")
	assert.Error(t, err)
	assert.False(t, loop.Running())
}
