package telemetry

import (
	"context"
	"sync"

	"github.com/rileyhilliard/tilemon/internal/errors"
)

// Loop owns the single active poller. Starting it again replaces the running
// poller: the old one is cancelled without waiting for it, and its updates
// carry an older generation so consumers can discard them.
type Loop struct {
	mu      sync.Mutex
	source  Source
	opts    []Option
	gen     uint64
	cancel  context.CancelFunc
	address string
	closed  bool
}

// NewLoop creates a loop that builds pollers from source and opts.
func NewLoop(source Source, opts ...Option) *Loop {
	return &Loop{
		source: source,
		opts:   opts,
	}
}

// Start begins polling address and returns the generation and the channel
// its updates arrive on. The channel is closed once the poller exits.
// Any previously started poller is cancelled first.
func (l *Loop) Start(ctx context.Context, address string) (uint64, <-chan Update, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, nil, errors.New(errors.ErrFetch, "Polling loop is closed", "")
	}
	if l.cancel != nil {
		l.cancel()
	}

	l.gen++
	pollCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.address = address

	p := NewPoller(l.source, address, l.opts...)
	p.generation = l.gen

	out := make(chan Update, 1)
	go func() {
		defer close(out)
		p.Run(pollCtx, out)
	}()

	return l.gen, out, nil
}

// Stop cancels the active poller, if any. The loop can be started again.
func (l *Loop) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
}

// Close stops polling for good. Later calls to Start fail.
func (l *Loop) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopLocked()
	l.closed = true
}

func (l *Loop) stopLocked() {
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.address = ""
	l.gen++
}

// Generation returns the generation of the most recent Start or Stop.
// Updates with any other generation are stale.
func (l *Loop) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Address returns the address being polled, or "" when stopped.
func (l *Loop) Address() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.address
}

// Running reports whether a poller is active.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}
