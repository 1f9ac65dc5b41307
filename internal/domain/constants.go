package domain

// Business validation constants
const (
	MinTotalSpots      = 1
	MaxTotalSpots      = 100000
	MinAssignedSpots   = 1
	MaxNotesLength     = 500
	MaxNameLength      = 255
	MaxUsageHoursPerOp = 24.0
)

// Dashboard constants
const (
	DashboardWindowDays     = 30
	LowInventoryThreshold   = 0.2
	RecentTransactionsLimit = 10
	RevenueTransactionType  = TransactionTypeBulkBooking
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// VehicleType тип транспорта, под который куплен чанк
type VehicleType string

const (
	VehicleCar        VehicleType = "car"
	VehicleMotorcycle VehicleType = "motorcycle"
	VehicleTruck      VehicleType = "truck"
	VehicleVan        VehicleType = "van"
	VehicleAny        VehicleType = "any"
)

// VehicleTypes список допустимых типов транспорта
var VehicleTypes = []VehicleType{
	VehicleCar,
	VehicleMotorcycle,
	VehicleTruck,
	VehicleVan,
	VehicleAny,
}

// IsValid проверяет, что тип транспорта из допустимого списка
func (v VehicleType) IsValid() bool {
	for _, t := range VehicleTypes {
		if v == t {
			return true
		}
	}
	return false
}
