package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/crud-backends/internal/cache"
	"github.com/spec-kit/crud-backends/internal/events"
	"github.com/spec-kit/crud-backends/internal/service"
)

func TestStartChangeWorker_SubscribesListener(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()

	StartChangeWorker(service.NewChangeListener(dispatcher, cache.Nop(), zap.New(core)))

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID: "evt-1", Type: events.EventQuestionChanged, Action: events.ActionDeleted, EntityID: 4,
	}))
	assert.Equal(t, 1, logs.FilterMessage("entity changed").Len())
}

func TestStartChangeWorker_NilListener(t *testing.T) {
	assert.NotPanics(t, func() { StartChangeWorker(nil) })
}
