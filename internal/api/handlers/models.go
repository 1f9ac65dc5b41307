package handlers

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// ChunkResponse HTTP модель чанка
type ChunkResponse struct {
	ID             int64   `json:"id"`
	OwnerID        int64   `json:"ownerId"`
	ParkingName    string  `json:"parkingName"`
	ChunkName      string  `json:"chunkName"`
	Company        string  `json:"company"`
	VehicleType    string  `json:"vehicleType"`
	TotalSpots     int     `json:"totalSpots"`
	UsedSpots      int     `json:"usedSpots"`
	AvailableSpots int     `json:"availableSpots"`
	ValidFrom      string  `json:"validFrom"`
	ValidTo        string  `json:"validTo"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// SubBookingResponse HTTP модель суб-бронирования
// Chunk заполнен, только если ссылка на чанк разрешена
type SubBookingResponse struct {
	ID             int64          `json:"id"`
	BulkBookingID  int64          `json:"bulkBookingId"`
	Chunk          *ChunkResponse `json:"chunk,omitempty"`
	OwnerID        int64          `json:"ownerId"`
	CustomerID     int64          `json:"customerId"`
	AssignedSpots  int            `json:"assignedSpots"`
	ValidFrom      string         `json:"validFrom"`
	ValidTo        string         `json:"validTo"`
	Status         string         `json:"status"`
	UsageHours     float64        `json:"usageHours"`
	LastAccessDate *string        `json:"lastAccessDate,omitempty"`
	Notes          *string        `json:"notes,omitempty"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

// FromChunk конвертирует доменный чанк в HTTP модель
func FromChunk(c *domain.Chunk) *ChunkResponse {
	return &ChunkResponse{
		ID:             c.ID,
		OwnerID:        c.OwnerID,
		ParkingName:    c.ParkingName,
		ChunkName:      c.ChunkName,
		Company:        c.Company,
		VehicleType:    string(c.VehicleType),
		TotalSpots:     c.TotalSpots,
		UsedSpots:      c.UsedSpots,
		AvailableSpots: c.AvailableSpots(),
		ValidFrom:      c.ValidFrom.Format(domain.DateFormat),
		ValidTo:        c.ValidTo.Format(domain.DateFormat),
		Status:         string(c.Status),
		Remarks:        c.Remarks,
		CreatedAt:      formatTimestamp(c.CreatedAt),
		UpdatedAt:      formatTimestamp(c.UpdatedAt),
	}
}

// FromChunks конвертирует список чанков
func FromChunks(chunks []*domain.Chunk) []*ChunkResponse {
	result := make([]*ChunkResponse, 0, len(chunks))
	for _, c := range chunks {
		result = append(result, FromChunk(c))
	}
	return result
}

// FromSubBooking конвертирует доменное суб-бронирование в HTTP модель
func FromSubBooking(sb *domain.SubBooking) *SubBookingResponse {
	resp := &SubBookingResponse{
		ID:            sb.ID,
		BulkBookingID: sb.ChunkID(),
		OwnerID:       sb.OwnerID,
		CustomerID:    sb.CustomerID,
		AssignedSpots: sb.AssignedSpots,
		ValidFrom:     sb.ValidFrom.Format(domain.DateFormat),
		ValidTo:       sb.ValidTo.Format(domain.DateFormat),
		Status:        string(sb.Status),
		UsageHours:    sb.UsageHours,
		Notes:         sb.Notes,
		CreatedAt:     formatTimestamp(sb.CreatedAt),
		UpdatedAt:     formatTimestamp(sb.UpdatedAt),
	}

	if chunk, ok := sb.Chunk.Chunk(); ok {
		resp.Chunk = FromChunk(chunk)
	}

	if sb.LastAccessDate != nil {
		s := sb.LastAccessDate.Format(time.RFC3339)
		resp.LastAccessDate = &s
	}

	return resp
}

// FromSubBookings конвертирует список суб-бронирований
func FromSubBookings(subBookings []*domain.SubBooking) []*SubBookingResponse {
	result := make([]*SubBookingResponse, 0, len(subBookings))
	for _, sb := range subBookings {
		result = append(result, FromSubBooking(sb))
	}
	return result
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateFormat, s)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
