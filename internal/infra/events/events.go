package events

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// EventType тип события распределения мест
type EventType string

const (
	EventAllocationCreated       EventType = "allocation.created"
	EventAllocationUpdated       EventType = "allocation.updated"
	EventAllocationDeleted       EventType = "allocation.deleted"
	EventAllocationStatusChanged EventType = "allocation.status_changed"
	EventAllocationExpired       EventType = "allocation.expired"
	EventUsageRecorded           EventType = "allocation.usage_recorded"
)

// AllocationEvent describes a committed change of a sub-booking.
// Routing key equals Type.
type AllocationEvent struct {
	Type          EventType `json:"type"`
	SubBookingID  int64     `json:"subBookingId"`
	ChunkID       int64     `json:"chunkId"`
	OwnerID       int64     `json:"ownerId"`
	CustomerID    int64     `json:"customerId"`
	AssignedSpots int       `json:"assignedSpots"`
	Status        string    `json:"status"`
	UsageHours    float64   `json:"usageHours,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// FromSubBooking собирает событие из состояния суб-бронирования после коммита
func FromSubBooking(eventType EventType, sb *domain.SubBooking, at time.Time) AllocationEvent {
	return AllocationEvent{
		Type:          eventType,
		SubBookingID:  sb.ID,
		ChunkID:       sb.ChunkID(),
		OwnerID:       sb.OwnerID,
		CustomerID:    sb.CustomerID,
		AssignedSpots: sb.AssignedSpots,
		Status:        string(sb.Status),
		UsageHours:    sb.UsageHours,
		OccurredAt:    at.UTC(),
	}
}
