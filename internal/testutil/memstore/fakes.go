package memstore

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/infra/events"
	customerClient "github.com/m04kA/SMC-ParkingAllocationService/internal/integrations/customerservice"
)

// Publisher запоминает опубликованные события
type Publisher struct {
	mu     sync.Mutex
	Events []events.AllocationEvent
}

func (p *Publisher) Publish(_ context.Context, event events.AllocationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
}

// Types типы опубликованных событий по порядку
func (p *Publisher) Types() []events.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]events.EventType, 0, len(p.Events))
	for _, e := range p.Events {
		types = append(types, e.Type)
	}
	return types
}

// Metrics считает вызовы доменных счетчиков
type Metrics struct {
	mu        sync.Mutex
	Allocs    int
	Conflicts int
	Rejects   map[string]int
}

func (m *Metrics) Allocated(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Allocs++
}

func (m *Metrics) Rejected(_ string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Rejects == nil {
		m.Rejects = map[string]int{}
	}
	m.Rejects[reason]++
}

func (m *Metrics) Conflict(string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Conflicts++
}

// Customers справочник клиентов в памяти
type Customers struct {
	Known map[int64]*domain.Customer
	Err   error
}

func (c *Customers) GetCustomer(_ context.Context, id int64) (*domain.Customer, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	customer, ok := c.Known[id]
	if !ok {
		return nil, customerClient.ErrCustomerNotFound
	}
	return customer, nil
}
