package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVenueChanged    EventType = "venue_changed"
	EventArtistChanged   EventType = "artist_changed"
	EventShowBooked      EventType = "show_booked"
	EventQuestionChanged EventType = "question_changed"
	EventDrinkChanged    EventType = "drink_changed"
)

// Action describes what happened to the entity.
type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event represents a change emitted by services after a successful write.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Action    Action    `json:"action"`
	EntityID  int64     `json:"entity_id"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload,omitempty"`
}

// ShowBookedPayload payload.
type ShowBookedPayload struct {
	VenueID   int64     `json:"venue_id"`
	ArtistID  int64     `json:"artist_id"`
	StartTime time.Time `json:"start_time"`
}
