package get_dashboard_summary

import (
	"time"

	getDashboardSummary "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/get_dashboard_summary"
)

// DashboardResponse HTTP response model
type DashboardResponse struct {
	Metrics            MetricsResponse       `json:"metrics"`
	ParkingLocations   []ParkingLocationJSON `json:"parkingLocations"`
	Customers          []CustomerJSON        `json:"customers"`
	RecentTransactions []TransactionJSON     `json:"recentTransactions"`
	Alerts             []AlertJSON           `json:"alerts"`
	DegradedSources    []string              `json:"degradedSources,omitempty"`
	GeneratedAt        string                `json:"generatedAt"`
}

type MetricsResponse struct {
	TotalPurchasedSpots int     `json:"totalPurchasedSpots"`
	TotalUsedSpots      int     `json:"totalUsedSpots"`
	TotalAvailableSpots int     `json:"totalAvailableSpots"`
	TotalRevenue        float64 `json:"totalRevenue"`
	TotalCustomers      int     `json:"totalCustomers"`
	ActiveChunks        int     `json:"activeChunks"`
	FullChunks          int     `json:"fullChunks"`
	ExpiredChunks       int     `json:"expiredChunks"`
}

type ParkingLocationJSON struct {
	ParkingName    string `json:"parkingName"`
	Chunks         int    `json:"chunks"`
	TotalSpots     int    `json:"totalSpots"`
	AvailableSpots int    `json:"availableSpots"`
}

type CustomerJSON struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	VehiclePlate *string `json:"vehiclePlate,omitempty"`
}

type TransactionJSON struct {
	ID         int64   `json:"id"`
	CustomerID *int64  `json:"customerId,omitempty"`
	Type       string  `json:"type"`
	Status     string  `json:"status"`
	Amount     float64 `json:"amount"`
	Currency   string  `json:"currency,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

type AlertJSON struct {
	Type    string `json:"type"`
	Source  string `json:"source,omitempty"`
	Message string `json:"message"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDashboardSummary.Response) *DashboardResponse {
	m := resp.Metrics
	out := &DashboardResponse{
		Metrics: MetricsResponse{
			TotalPurchasedSpots: m.TotalPurchasedSpots,
			TotalUsedSpots:      m.TotalUsedSpots,
			TotalAvailableSpots: m.TotalAvailableSpots,
			TotalRevenue:        m.TotalRevenue,
			TotalCustomers:      m.TotalCustomers,
			ActiveChunks:        m.ActiveChunks,
			FullChunks:          m.FullChunks,
			ExpiredChunks:       m.ExpiredChunks,
		},
		ParkingLocations:   make([]ParkingLocationJSON, 0, len(resp.ParkingLocations)),
		Customers:          make([]CustomerJSON, 0, len(resp.Customers)),
		RecentTransactions: make([]TransactionJSON, 0, len(resp.RecentTransactions)),
		Alerts:             make([]AlertJSON, 0, len(resp.Alerts)),
		DegradedSources:    resp.DegradedSources,
		GeneratedAt:        resp.GeneratedAt.Format(time.RFC3339),
	}

	for _, p := range resp.ParkingLocations {
		out.ParkingLocations = append(out.ParkingLocations, ParkingLocationJSON(p))
	}
	for _, c := range resp.Customers {
		out.Customers = append(out.Customers, CustomerJSON{
			ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, VehiclePlate: c.VehiclePlate,
		})
	}
	for _, t := range resp.RecentTransactions {
		out.RecentTransactions = append(out.RecentTransactions, TransactionJSON{
			ID:         t.ID,
			CustomerID: t.CustomerID,
			Type:       string(t.Type),
			Status:     string(t.Status),
			Amount:     t.Amount,
			Currency:   t.Currency,
			CreatedAt:  t.CreatedAt.Format(time.RFC3339),
		})
	}
	for _, a := range resp.Alerts {
		out.Alerts = append(out.Alerts, AlertJSON{Type: string(a.Type), Source: a.Source, Message: a.Message})
	}

	return out
}
