package paymentservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// Client клиент журнала транзакций PaymentService (только чтение)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента PaymentService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// ListTransactions получает транзакции координатора за период [from, to]
func (c *Client) ListTransactions(ctx context.Context, coordinatorID int64, from, to time.Time) ([]*domain.Transaction, error) {
	query := url.Values{}
	query.Set("coordinatorId", strconv.FormatInt(coordinatorID, 10))
	query.Set("from", from.UTC().Format(time.RFC3339))
	query.Set("to", to.UTC().Format(time.RFC3339))

	reqURL := fmt.Sprintf("%s/internal/transactions?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var list TransactionList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	c.log.Info("PaymentService: fetched %d transactions for coordinator=%d", len(list.Transactions), coordinatorID)

	result := make([]*domain.Transaction, 0, len(list.Transactions))
	for _, tx := range list.Transactions {
		result = append(result, &domain.Transaction{
			ID:            tx.ID,
			CoordinatorID: tx.CoordinatorID,
			CustomerID:    tx.CustomerID,
			Type:          domain.TransactionType(tx.Type),
			Status:        domain.TransactionStatus(tx.Status),
			Amount:        tx.Amount,
			Currency:      tx.Currency,
			CreatedAt:     tx.CreatedAt,
		})
	}

	return result, nil
}
