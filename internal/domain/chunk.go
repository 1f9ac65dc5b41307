package domain

import "time"

// ChunkStatus represents the status of a purchased capacity pool
type ChunkStatus string

const (
	ChunkStatusActive  ChunkStatus = "active"
	ChunkStatusFull    ChunkStatus = "full"
	ChunkStatusExpired ChunkStatus = "expired"
)

// Chunk represents a pool of parking-spot capacity bought by a coordinator
// for a date range. TotalSpots never changes after creation; UsedSpots and
// Status only change through the allocator's atomic update path.
type Chunk struct {
	ID          int64
	OwnerID     int64
	ParkingName string
	ChunkName   string
	Company     string
	VehicleType VehicleType
	TotalSpots  int
	UsedSpots   int
	ValidFrom   time.Time
	ValidTo     time.Time
	Status      ChunkStatus
	Remarks     *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailableSpots returns totalSpots - usedSpots
func (c *Chunk) AvailableSpots() int {
	return c.TotalSpots - c.UsedSpots
}

// IsExpired returns true if the chunk reached the terminal Expired status
func (c *Chunk) IsExpired() bool {
	return c.Status == ChunkStatusExpired
}

// IsOverdue returns true if validTo has passed relative to now
func (c *Chunk) IsOverdue(now time.Time) bool {
	return IsDateInPast(c.ValidTo, now)
}

// Contains returns true if [from, to] lies inside the chunk window
func (c *Chunk) Contains(from, to time.Time) bool {
	return WindowContains(c.ValidFrom, c.ValidTo, from, to)
}

// IsAvailableForAllocation returns true if new sub-bookings can still be carved out
func (c *Chunk) IsAvailableForAllocation(now time.Time) bool {
	return c.Status == ChunkStatusActive && c.AvailableSpots() > 0 && !c.IsOverdue(now)
}

// DeriveStatus computes the status for a given used spot count.
// Expired is sticky: once expired (or overdue) the chunk never becomes Active or Full again.
func (c *Chunk) DeriveStatus(usedSpots int, now time.Time) ChunkStatus {
	if c.IsExpired() || c.IsOverdue(now) {
		return ChunkStatusExpired
	}
	if c.TotalSpots-usedSpots <= 0 {
		return ChunkStatusFull
	}
	return ChunkStatusActive
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (c *Chunk) OccupancyRate() float64 {
	if c.TotalSpots == 0 {
		return 0
	}
	return float64(c.UsedSpots) / float64(c.TotalSpots) * 100
}
