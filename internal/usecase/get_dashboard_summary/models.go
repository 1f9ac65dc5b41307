package get_dashboard_summary

import (
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// AlertType тип предупреждения на дашборде
type AlertType string

const (
	AlertLowInventory AlertType = "low_inventory"
	AlertInfo         AlertType = "info"
	AlertWarning      AlertType = "warning"
)

// Источники данных дашборда
const (
	SourceChunks       = "chunks"
	SourceCustomers    = "customers"
	SourceTransactions = "transactions"
)

// Options параметры агрегатора
type Options struct {
	SourceTimeout time.Duration // Ограничение на каждый источник отдельно
	WindowDays    int           // Окно журнала транзакций в днях
}

// Request модель запроса сводки
type Request struct {
	CoordinatorID int64
}

// Metrics агрегированные показатели
type Metrics struct {
	TotalPurchasedSpots int
	TotalUsedSpots      int
	TotalAvailableSpots int
	TotalRevenue        float64
	TotalCustomers      int
	ActiveChunks        int
	FullChunks          int
	ExpiredChunks       int
}

// ParkingLocation чанки одной парковки
type ParkingLocation struct {
	ParkingName    string
	Chunks         int
	TotalSpots     int
	AvailableSpots int
}

// Alert предупреждение на дашборде
type Alert struct {
	Type    AlertType
	Source  string // Для warning: источник, который не ответил
	Message string
}

// Response сводка координатора
type Response struct {
	Metrics            Metrics
	ParkingLocations   []ParkingLocation
	Customers          []*domain.Customer
	RecentTransactions []*domain.Transaction
	Alerts             []Alert
	DegradedSources    []string
	GeneratedAt        time.Time
}
