package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"userexplorer/internal/eventbus"
)

func TestSubscribeEventsLogsFetchOutcomes(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := eventbus.New(nil)
	defer bus.Close()

	unsubscribe := SubscribeEvents(bus, zap.New(core))
	defer unsubscribe()

	bus.Publish(eventbus.FetchStartedEvent{Attempt: 1, RequestID: "abc"})
	bus.Publish(eventbus.FetchFailedEvent{Attempt: 1, Kind: "protocol", Message: "Server responded with status 500"})

	require.Eventually(t, func() bool { return logs.Len() == 2 }, time.Second, 5*time.Millisecond)

	failed := logs.FilterMessage("load failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.WarnLevel, failed[0].Level)
	assert.Equal(t, "protocol", failed[0].ContextMap()["kind"])

	started := logs.FilterMessage("load started").All()
	require.Len(t, started, 1)
	assert.Equal(t, "abc", started[0].ContextMap()["request_id"])
}

func TestSubscribeEventsQueryActivityIsDebug(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	bus := eventbus.New(nil)
	defer bus.Close()

	unsubscribe := SubscribeEvents(bus, zap.New(core))
	defer unsubscribe()

	bus.Publish(eventbus.QueryAppliedEvent{Query: "jo"})
	bus.Publish(eventbus.FetchSucceededEvent{Attempt: 2, Count: 3})

	require.Eventually(t, func() bool { return logs.Len() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "load succeeded", logs.All()[0].Message)
}

func TestUnsubscribeEventsStopsLogging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bus := eventbus.New(nil)
	defer bus.Close()

	SubscribeEvents(bus, zap.New(core))()

	bus.Publish(eventbus.FetchCanceledEvent{Attempt: 1})
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, logs.Len())
}
