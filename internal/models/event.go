package models

// Event operation names published to Kafka.
const (
	EventUserRegistered = "user_registered"
	EventUserUpdated    = "user_updated"
	EventPasswordReset  = "password_reset"
)

// UserEvent is the message published to Kafka on user mutations.
type UserEvent struct {
	EventID   string `json:"event_id"`  // Unique event identifier
	Timestamp int64  `json:"timestamp"` // Unix timestamp of the mutation
	UserID    int64  `json:"user_id"`   // Affected user
	Operation string `json:"operation"` // One of the Event* constants
}
