package telemetry

import (
	"context"
	"time"

	"github.com/rileyhilliard/tilemon/internal/errors"
	"github.com/rileyhilliard/tilemon/internal/logger"
)

// DefaultInterval is the wait between the end of one fetch and the start of
// the next.
const DefaultInterval = 2 * time.Second

// StatusConnected is reported for a successful poll.
const StatusConnected = "connected"

// Update is the outcome of one poll attempt.
//
// On success Readings holds the full reading list and Err is nil. On failure
// Readings is nil and consumers keep whatever they last showed; Status holds
// the token to display (errors.StatusConnecting or
// errors.StatusInvalidEndpoint).
type Update struct {
	Generation uint64
	Readings   []Metric
	Status     string
	Err        error
	At         time.Time
}

// OK reports whether the poll succeeded.
func (u Update) OK() bool {
	return u.Err == nil
}

// Option configures a Poller.
type Option func(*Poller)

// WithInterval sets the inter-poll delay. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the logger used for poll diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(p *Poller) {
		p.log = l
	}
}

// WithClock overrides time.Now for stamping updates.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		if now != nil {
			p.now = now
		}
	}
}

// Poller repeatedly fetches readings from one address. Attempts never
// overlap: the interval starts after the previous attempt's update has been
// handed off.
type Poller struct {
	source     Source
	address    string
	generation uint64
	interval   time.Duration
	log        logger.Logger
	now        func() time.Time
}

// NewPoller creates a poller for address. The address is normalized on every
// attempt so an invalid one keeps reporting invalid-endpoint instead of
// stopping the loop.
func NewPoller(source Source, address string, opts ...Option) *Poller {
	p := &Poller{
		source:   source,
		address:  address,
		interval: DefaultInterval,
		log:      logger.Noop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls until ctx is cancelled, sending one Update per attempt on out.
// Run does not close out.
func (p *Poller) Run(ctx context.Context, out chan<- Update) {
	for {
		u, ok := p.attempt(ctx)
		if !ok {
			return
		}

		select {
		case out <- u:
		case <-ctx.Done():
			return
		}

		timer := time.NewTimer(p.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// attempt performs one fetch. ok is false when ctx was cancelled mid-flight,
// in which case the result belongs to nobody and is dropped.
func (p *Poller) attempt(ctx context.Context) (Update, bool) {
	u := Update{Generation: p.generation}

	base, err := NormalizeEndpoint(p.address)
	if err != nil {
		p.log.Warn("invalid endpoint %q", p.address)
		return p.fail(u, err), ctx.Err() == nil
	}

	readings, err := p.source.Fetch(ctx, DataURL(base))
	if ctx.Err() != nil {
		return u, false
	}
	if err != nil {
		p.log.Debug("poll %s failed: %s", base, errors.Summary(err))
		return p.fail(u, err), true
	}

	p.log.Debug("poll %s: %d readings", base, len(readings))
	u.Readings = readings
	u.Status = StatusConnected
	u.At = p.now()
	return u, true
}

func (p *Poller) fail(u Update, err error) Update {
	u.Err = err
	u.Status = errors.StatusToken(err)
	u.At = p.now()
	return u
}
