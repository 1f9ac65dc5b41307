package domain

import "time"

// TransactionStatus статус транзакции в журнале платежей
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// TransactionType тип транзакции
type TransactionType string

const (
	TransactionTypeBulkBooking TransactionType = "bulk_booking"
	TransactionTypeSubBooking  TransactionType = "sub_booking"
	TransactionTypeRefund      TransactionType = "refund"
)

// Transaction represents an entry of the external transaction log
type Transaction struct {
	ID            int64
	CoordinatorID int64
	CustomerID    *int64
	Type          TransactionType
	Status        TransactionStatus
	Amount        float64
	Currency      string
	CreatedAt     time.Time
}

// IsCompleted returns true if the transaction has settled
func (t *Transaction) IsCompleted() bool {
	return t.Status == TransactionStatusCompleted
}

// IsPending returns true if the transaction is still awaiting settlement
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// CountsAsRevenue returns true if the transaction contributes to dashboard revenue
func (t *Transaction) CountsAsRevenue() bool {
	return t.IsCompleted() && t.Type == RevenueTransactionType
}
