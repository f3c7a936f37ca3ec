package kafka

import (
	"time"

	"github.com/google/uuid"
)

// Event types published on the listing event stream.
const (
	EventListingCreated    = "listing.created"
	EventListingUpdated    = "listing.updated"
	EventListingDeleted    = "listing.deleted"
	EventListingCheckedIn  = "listing.checked_in"
	EventListingCheckedOut = "listing.checked_out"
	EventQueueUpdated      = "listing.queue_updated"
	EventPolicyEnforced    = "policy.enforced"
)

// Header keys attached to every message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Event is the JSON envelope for one listing lifecycle event. The listing id
// doubles as the partition key so events for one listing stay ordered.
type Event struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ListingID  string    `json:"listing_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

func NewEvent(eventType, listingID string, payload any) Event {
	return Event{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		ListingID:  listingID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}
