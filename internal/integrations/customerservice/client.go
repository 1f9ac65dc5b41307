package customerservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// Client клиент для работы со справочником клиентов
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента CustomerService
// Каждый запрос ограничен timeout, чтобы вызов не зависал бесконечно
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetCustomer получает клиента по ID
func (c *Client) GetCustomer(ctx context.Context, customerID int64) (*domain.Customer, error) {
	url := fmt.Sprintf("%s/internal/customers/%d", c.baseURL, customerID)

	var customer Customer
	if err := c.get(ctx, url, &customer); err != nil {
		return nil, err
	}

	return toDomain(customer), nil
}

// ListByCoordinator получает всех клиентов координатора
func (c *Client) ListByCoordinator(ctx context.Context, coordinatorID int64) ([]*domain.Customer, error) {
	url := fmt.Sprintf("%s/internal/coordinators/%d/customers", c.baseURL, coordinatorID)

	var list CustomerList
	if err := c.get(ctx, url, &list); err != nil {
		return nil, err
	}

	c.log.Info("CustomerService: fetched %d customers for coordinator=%d", len(list.Customers), coordinatorID)

	result := make([]*domain.Customer, 0, len(list.Customers))
	for _, customer := range list.Customers {
		result = append(result, toDomain(customer))
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return ErrCustomerNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}

func toDomain(c Customer) *domain.Customer {
	return &domain.Customer{
		ID:            c.ID,
		CoordinatorID: c.CoordinatorID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		VehiclePlate:  c.VehiclePlate,
	}
}
