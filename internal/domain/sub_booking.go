package domain

import "time"

// SubBookingStatus represents the status of a sub-booking
type SubBookingStatus string

const (
	SubBookingStatusActive    SubBookingStatus = "active"
	SubBookingStatusSuspended SubBookingStatus = "suspended"
	SubBookingStatusExpired   SubBookingStatus = "expired"
)

// SubBooking represents a slice of a chunk allocated to one customer
type SubBooking struct {
	ID            int64
	Chunk         ChunkRef
	OwnerID       int64
	CustomerID    int64
	AssignedSpots int
	ValidFrom     time.Time
	ValidTo       time.Time
	Status        SubBookingStatus

	UsageHours     float64
	LastAccessDate *time.Time
	Notes          *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ChunkID returns the id of the parent chunk regardless of how the reference is held
func (s *SubBooking) ChunkID() int64 {
	return s.Chunk.ID()
}

// HoldsCapacity returns true if the sub-booking counts towards chunk.usedSpots
func (s *SubBooking) HoldsCapacity() bool {
	return s.Status == SubBookingStatusActive
}

// IsExpired returns true if the sub-booking reached the terminal Expired status
func (s *SubBooking) IsExpired() bool {
	return s.Status == SubBookingStatusExpired
}

// IsOverdue returns true if validTo has passed relative to now
func (s *SubBooking) IsOverdue(now time.Time) bool {
	return IsDateInPast(s.ValidTo, now)
}

// CanBeEdited returns true if spots, dates or notes may still change
func (s *SubBooking) CanBeEdited() bool {
	return !s.IsExpired()
}

// CanTransitionTo reports whether a manual status change is allowed.
// Only Active <-> Suspended is manual; Expired is terminal.
func (s *SubBooking) CanTransitionTo(target SubBookingStatus) bool {
	switch {
	case s.Status == SubBookingStatusActive && target == SubBookingStatusSuspended:
		return true
	case s.Status == SubBookingStatusSuspended && target == SubBookingStatusActive:
		return true
	default:
		return false
	}
}

// SubBookingStatuses список всех статусов
var SubBookingStatuses = []SubBookingStatus{
	SubBookingStatusActive,
	SubBookingStatusSuspended,
	SubBookingStatusExpired,
}
