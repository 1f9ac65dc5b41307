package customerservice

// Customer модель клиента из справочника
type Customer struct {
	ID            int64   `json:"id"`
	CoordinatorID int64   `json:"coordinator_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	VehiclePlate  *string `json:"vehicle_plate,omitempty"`
}

// CustomerList ответ со списком клиентов координатора
type CustomerList struct {
	Customers []Customer `json:"customers"`
}

// ErrorResponse модель ошибки от CustomerService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
