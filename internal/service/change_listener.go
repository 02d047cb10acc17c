package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/crud-backends/internal/cache"
	"github.com/spec-kit/crud-backends/internal/events"
)

// ChangeListener reacts to entity-changed events: it writes an audit log line and drops cached
// listings the change made stale.
type ChangeListener struct {
	dispatcher events.Dispatcher
	cache      cache.Cache
	logger     *zap.Logger
}

// NewChangeListener creates the listener.
func NewChangeListener(dispatcher events.Dispatcher, c cache.Cache, logger *zap.Logger) *ChangeListener {
	if c == nil {
		c = cache.Nop()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChangeListener{dispatcher: dispatcher, cache: c, logger: logger}
}

// RegisterHandlers subscribes to events.
func (l *ChangeListener) RegisterHandlers() {
	if l.dispatcher == nil {
		return
	}
	l.dispatcher.Subscribe(events.EventVenueChanged, l.audit)
	l.dispatcher.Subscribe(events.EventArtistChanged, l.audit)
	l.dispatcher.Subscribe(events.EventShowBooked, l.handleShowBooked)
	l.dispatcher.Subscribe(events.EventQuestionChanged, l.audit)
	l.dispatcher.Subscribe(events.EventDrinkChanged, l.handleDrinkChanged)
}

func (l *ChangeListener) audit(_ context.Context, event events.Event) error {
	l.logger.Info("entity changed",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)),
		zap.String("action", string(event.Action)),
		zap.Int64("entity_id", event.EntityID),
		zap.String("subject", event.Subject),
		zap.Time("timestamp", event.Timestamp))
	return nil
}

func (l *ChangeListener) handleShowBooked(ctx context.Context, event events.Event) error {
	if payload, ok := event.Payload.(events.ShowBookedPayload); ok {
		l.logger.Info("show booked",
			zap.Int64("show_id", event.EntityID),
			zap.Int64("venue_id", payload.VenueID),
			zap.Int64("artist_id", payload.ArtistID),
			zap.Time("start_time", payload.StartTime))
		return nil
	}
	return l.audit(ctx, event)
}

func (l *ChangeListener) handleDrinkChanged(ctx context.Context, event events.Event) error {
	_ = l.audit(ctx, event)
	if err := l.cache.Delete(ctx, DrinksCacheKey); err != nil {
		l.logger.Warn("drink cache invalidation failed", zap.Error(err), zap.Int64("drink_id", event.EntityID))
		return err
	}
	return nil
}
