package paymentservice

import "time"

// Transaction модель транзакции из журнала платежей
type Transaction struct {
	ID            int64     `json:"id"`
	CoordinatorID int64     `json:"coordinator_id"`
	CustomerID    *int64    `json:"customer_id,omitempty"`
	Type          string    `json:"type"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransactionList ответ со списком транзакций
type TransactionList struct {
	Transactions []Transaction `json:"transactions"`
}
