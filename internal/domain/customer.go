package domain

// Customer identity record from the customer directory.
// Used to validate customerId on allocation and for dashboard display.
type Customer struct {
	ID            int64
	CoordinatorID int64
	Name          string
	Email         string
	Phone         string
	VehiclePlate  *string
}
