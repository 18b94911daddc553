// Package cache holds the last fetched user directory and its fetch status.
//
// A Cache is owned by a single event loop. Load hands back a Job that does
// the blocking fetch off the loop; its Completion must be passed back to
// Complete on the loop. Nothing here takes a lock.
package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"userexplorer/internal/directory"
	"userexplorer/internal/domain"
	"userexplorer/internal/eventbus"
)

// Job performs one fetch attempt. It blocks and is safe to run on any
// goroutine.
type Job func() Completion

// Completion is the outcome of a Job, tagged with the attempt that produced it
type Completion struct {
	Attempt  uint64
	Records  []domain.Record
	Err      error
	Duration time.Duration
}

// Cache owns the FetchState and the single outstanding request
type Cache struct {
	source  directory.Source
	state   domain.FetchState
	version uint64
	attempt uint64
	cancel  context.CancelFunc
	closed  bool
	logger  *zap.Logger
	bus     eventbus.EventBus
}

// Option configures a Cache
type Option func(*Cache)

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventBus publishes fetch lifecycle events to bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Cache) { c.bus = bus }
}

// New creates a cache in the Pending state. No request is made until Load.
func New(source directory.Source, opts ...Option) *Cache {
	c := &Cache{
		source: source,
		state:  domain.Pending(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("cache")
	return c
}

// Load starts a new attempt. Any outstanding request is cancelled first and
// the state resets to Pending. The returned Job is nil once the cache is
// closed.
func (c *Cache) Load(ctx context.Context) Job {
	if c.closed {
		return nil
	}
	c.Cancel()

	c.attempt++
	attempt := c.attempt
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.setState(domain.Pending())

	requestID := uuid.NewString()
	c.logger.Debug("load started", zap.Uint64("attempt", attempt), zap.String("request_id", requestID))
	c.publish(domain.FetchStartedEvent{Attempt: attempt, RequestID: requestID})

	source := c.source
	return func() Completion {
		start := time.Now()
		records, err := source.Fetch(directory.WithRequestID(ctx, requestID))
		if err == nil && ctx.Err() != nil {
			// Finished after the caller gave up: treat as abandoned
			err = ctx.Err()
		}
		return Completion{
			Attempt:  attempt,
			Records:  records,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// Complete applies the outcome of a Job. Outcomes of superseded, cancelled
// or post-Close attempts are dropped. It reports whether the state changed.
func (c *Cache) Complete(done Completion) bool {
	if c.closed || c.cancel == nil || done.Attempt != c.attempt {
		c.logger.Debug("dropping stale completion",
			zap.Uint64("attempt", done.Attempt),
			zap.Uint64("current", c.attempt))
		return false
	}

	if directory.IsCanceled(done.Err) {
		// The caller's context ended the attempt
		c.cancel = nil
		c.publish(domain.FetchCanceledEvent{Attempt: done.Attempt})
		return false
	}

	c.cancel()
	c.cancel = nil

	if done.Err != nil {
		message := directory.Describe(done.Err)
		c.logger.Warn("load failed",
			zap.Uint64("attempt", done.Attempt),
			zap.String("kind", directory.Kind(done.Err)),
			zap.Error(done.Err))
		c.setState(domain.Failed(message))
		c.publish(domain.FetchFailedEvent{
			Attempt:  done.Attempt,
			Kind:     directory.Kind(done.Err),
			Message:  message,
			Duration: done.Duration,
		})
		return true
	}

	c.logger.Info("load succeeded",
		zap.Uint64("attempt", done.Attempt),
		zap.Int("records", len(done.Records)))
	c.setState(domain.Ready(done.Records))
	c.publish(domain.FetchSucceededEvent{
		Attempt:  done.Attempt,
		Count:    len(done.Records),
		Duration: done.Duration,
	})
	return true
}

// Cancel abandons the outstanding request, if any. The state is left as is.
func (c *Cache) Cancel() {
	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	c.logger.Debug("load canceled", zap.Uint64("attempt", c.attempt))
	c.publish(domain.FetchCanceledEvent{Attempt: c.attempt})
}

// Close cancels any outstanding request and ignores everything afterwards
func (c *Cache) Close() {
	if c.closed {
		return
	}
	c.Cancel()
	c.closed = true
}

// State returns the current fetch state
func (c *Cache) State() domain.FetchState { return c.state }

// Version changes every time the state, and with it the record sequence,
// is replaced.
func (c *Cache) Version() uint64 { return c.version }

// InFlight reports whether a request is outstanding
func (c *Cache) InFlight() bool { return c.cancel != nil }

func (c *Cache) setState(s domain.FetchState) {
	c.state = s
	c.version++
}

func (c *Cache) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
