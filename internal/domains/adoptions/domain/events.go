package domain

import "time"

// EventType names an adoption domain event.
type EventType string

const (
	EventAdoptionRequested EventType = "adoptions.adoption.requested"
	EventAdoptionRemoved   EventType = "adoptions.adoption.removed"
)

// Event is emitted after an adoption change has been committed.
type Event struct {
	Type       EventType `json:"type"`
	AdoptionID string    `json:"adoptionId"`
	UserID     string    `json:"userId"`
	PetID      string    `json:"petId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent describes a change to the given adoption.
func NewEvent(eventType EventType, adoption *Adoption, at time.Time) Event {
	return Event{
		Type:       eventType,
		AdoptionID: adoption.ID,
		UserID:     adoption.UserID,
		PetID:      adoption.PetID,
		OccurredAt: at.UTC(),
	}
}
