// Package query turns keystrokes into the filtered view of the directory.
package query

import (
	"time"

	"go.uber.org/zap"

	"userexplorer/internal/clock"
	"userexplorer/internal/debounce"
	"userexplorer/internal/domain"
	"userexplorer/internal/eventbus"
	"userexplorer/internal/filter"
)

// Fired is a debounce timer firing for a query value
type Fired = debounce.Fired[string]

// RecordSource is the read side of the record cache
type RecordSource interface {
	State() domain.FetchState
	Version() uint64
}

// Snapshot is everything a renderer needs. Revision changes only when
// Filtered was recomputed or dropped.
type Snapshot struct {
	Status          domain.FetchStatus
	Message         string
	RawQuery        string
	EffectiveQuery  string
	Filtered        []domain.Record
	ResultCount     int
	FilteringActive bool
	Revision        uint64
}

type memo struct {
	valid   bool
	version uint64
	query   string
	result  []domain.Record
}

// Controller owns the raw query and the memoized filter result.
// All methods must be called from the owner's event loop.
type Controller struct {
	records    RecordSource
	debouncer  *debounce.Debouncer[string]
	memo       memo
	revision   uint64
	recomputes uint64
	logger     *zap.Logger
	bus        eventbus.EventBus
	delay      time.Duration
	clock      clock.Clock
	closed     bool
}

// Option configures a Controller
type Option func(*Controller)

// WithDelay sets the debounce quiet period
func WithDelay(delay time.Duration) Option {
	return func(c *Controller) { c.delay = delay }
}

// WithClock sets the clock driving the debounce timer
func WithClock(clk clock.Clock) Option {
	return func(c *Controller) { c.clock = clk }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventBus publishes query and filter events to bus
func WithEventBus(bus eventbus.EventBus) Option {
	return func(c *Controller) { c.bus = bus }
}

// New creates a controller reading from records. emit receives debounce
// fires from the timer goroutine and must post them back to the loop,
// where Deliver applies them.
func New(records RecordSource, emit func(Fired), opts ...Option) *Controller {
	c := &Controller{
		records: records,
		logger:  zap.NewNop(),
		delay:   debounce.DefaultDelay,
		clock:   clock.Real(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("query")
	c.debouncer = debounce.New("", c.delay, c.clock, emit)
	return c
}

// SetQuery replaces the raw query immediately and re-arms the debounce.
// It does nothing after Close.
func (c *Controller) SetQuery(v string) {
	if c.closed {
		return
	}
	c.debouncer.Set(v)
}

// Deliver applies a debounce fire. It reports whether the effective query
// changed.
func (c *Controller) Deliver(f Fired) bool {
	if c.closed || !c.debouncer.Deliver(f) {
		return false
	}
	query := c.debouncer.Value()
	c.logger.Debug("query applied", zap.String("query", query))
	if c.bus != nil {
		c.bus.Publish(domain.QueryAppliedEvent{Query: query})
	}
	return true
}

// RawQuery returns the text as typed
func (c *Controller) RawQuery() string { return c.debouncer.Latest() }

// EffectiveQuery returns the debounced query the filter runs with
func (c *Controller) EffectiveQuery() string { return c.debouncer.Value() }

// IsFilteringActive reports whether a non-empty query is in effect
func (c *Controller) IsFilteringActive() bool { return c.EffectiveQuery() != "" }

// Settling reports whether a keystroke is waiting for its quiet period
func (c *Controller) Settling() bool { return c.debouncer.Pending() }

// Filtered returns the records matching the effective query, or nil while
// the cache is not Ready. The result is recomputed only when the record
// sequence or the effective query changed.
func (c *Controller) Filtered() []domain.Record {
	state := c.records.State()
	if !state.IsReady() {
		if c.memo.valid {
			c.memo = memo{}
			c.revision++
		}
		return nil
	}

	version := c.records.Version()
	query := c.EffectiveQuery()
	if c.memo.valid && c.memo.version == version && c.memo.query == query {
		return c.memo.result
	}

	start := time.Now()
	result := filter.Apply(state.Records, query)
	elapsed := time.Since(start)

	c.memo = memo{valid: true, version: version, query: query, result: result}
	c.revision++
	c.recomputes++

	if c.bus != nil {
		c.bus.Publish(domain.FilterComputedEvent{
			Query:       query,
			ResultCount: len(result),
			Duration:    elapsed,
		})
	}
	return result
}

// ResultCount returns len(Filtered())
func (c *Controller) ResultCount() int { return len(c.Filtered()) }

// Recomputations counts how many times the filter actually ran
func (c *Controller) Recomputations() uint64 { return c.recomputes }

// Snapshot returns the presentation contract
func (c *Controller) Snapshot() Snapshot {
	state := c.records.State()
	filtered := c.Filtered()
	return Snapshot{
		Status:          state.Status,
		Message:         state.Message,
		RawQuery:        c.RawQuery(),
		EffectiveQuery:  c.EffectiveQuery(),
		Filtered:        filtered,
		ResultCount:     len(filtered),
		FilteringActive: c.IsFilteringActive(),
		Revision:        c.revision,
	}
}

// Close stops the pending debounce timer. Later queries and fires are
// ignored.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.debouncer.Close()
}
