// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names used by the publisher and the consumer.
const (
	ReservationCreatedQueue = "reservation.created"
	StatusChangedQueue      = "reservation.status_changed"
)

// ReservationCreatedEvent is published when a public booking request is
// accepted.  It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type ReservationCreatedEvent struct {
	ReservationID string `json:"reservation_id"`
	CustomerName  string `json:"customer_name"`
	Email         string `json:"email"`
	Package       string `json:"package"`
	ServiceDate   string `json:"service_date"`
	TimeSlot      string `json:"time_slot"`
	Park          string `json:"park"`
	EventType     string `json:"event_type"`
	CreatedAt     string `json:"created_at"`
}

// StatusChangedEvent is published when an administrator moves a
// reservation to a different status.
type StatusChangedEvent struct {
	ReservationID string `json:"reservation_id"`
	CustomerName  string `json:"customer_name"`
	Park          string `json:"park"`
	ServiceDate   string `json:"service_date"`
	TimeSlot      string `json:"time_slot"`
	OldStatus     string `json:"old_status"`
	NewStatus     string `json:"new_status"`
	ChangedAt     string `json:"changed_at"`
}
