package logging

import (
	"go.uber.org/zap"

	"userexplorer/internal/eventbus"
)

// SubscribeEvents logs pipeline events. Fetch outcomes are logged at info
// or warn, query activity at debug. The returned func unsubscribes.
func SubscribeEvents(bus eventbus.EventBus, logger *zap.Logger) func() {
	logger = logger.Named("events")
	handle := func(e eventbus.DomainEvent) { logEvent(logger, e) }

	unsubscribers := []func(){
		bus.Subscribe(eventbus.EventFetchStarted, handle),
		bus.Subscribe(eventbus.EventFetchSucceeded, handle),
		bus.Subscribe(eventbus.EventFetchFailed, handle),
		bus.Subscribe(eventbus.EventFetchCanceled, handle),
		bus.Subscribe(eventbus.EventQueryApplied, handle),
		bus.Subscribe(eventbus.EventFilterComputed, handle),
	}
	return func() {
		for _, unsubscribe := range unsubscribers {
			unsubscribe()
		}
	}
}

func logEvent(logger *zap.Logger, event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.FetchStartedEvent:
		logger.Info("load started", zap.Uint64("attempt", e.Attempt), zap.String("request_id", e.RequestID))
	case eventbus.FetchSucceededEvent:
		logger.Info("load succeeded",
			zap.Uint64("attempt", e.Attempt),
			zap.Int("records", e.Count),
			zap.Duration("elapsed", e.Duration))
	case eventbus.FetchFailedEvent:
		logger.Warn("load failed",
			zap.Uint64("attempt", e.Attempt),
			zap.String("kind", e.Kind),
			zap.String("message", e.Message),
			zap.Duration("elapsed", e.Duration))
	case eventbus.FetchCanceledEvent:
		logger.Debug("load canceled", zap.Uint64("attempt", e.Attempt))
	case eventbus.QueryAppliedEvent:
		logger.Debug("query applied", zap.String("query", e.Query))
	case eventbus.FilterComputedEvent:
		logger.Debug("filter computed",
			zap.String("query", e.Query),
			zap.Int("results", e.ResultCount),
			zap.Duration("elapsed", e.Duration))
	}
}
