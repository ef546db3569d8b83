package services

// Dashboard event types
const (
	EventItemCreated  = "item_created"
	EventItemClaimed  = "item_claimed"
	EventItemShipped  = "item_shipped"
	EventItemUpdated  = "item_updated"
	EventItemDeleted  = "item_deleted"
	EventClaimDeleted = "claim_deleted"
)

// EventPublisher pushes item events to connected staff dashboards
type EventPublisher interface {
	Publish(eventType, message string, data interface{})
}

// NoopPublisher discards events
type NoopPublisher struct{}

func (NoopPublisher) Publish(string, string, interface{}) {}
