package get_dashboard_summary

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// UseCase агрегатор сводки координатора
type UseCase struct {
	chunkRepo    ChunkRepository
	customers    CustomerDirectory
	transactions TransactionLog
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	chunkRepo ChunkRepository,
	customers CustomerDirectory,
	transactions TransactionLog,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.WindowDays <= 0 {
		opts.WindowDays = domain.DashboardWindowDays
	}
	return &UseCase{
		chunkRepo:    chunkRepo,
		customers:    customers,
		transactions: transactions,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute собирает сводку
//
// Три источника опрашиваются параллельно, каждый со своим таймаутом.
// Отказ источника не валит запрос: секция остается пустой, в alerts появляется warning.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.CoordinatorID <= 0 {
		return nil, domain.Invalid(ErrInvalidInput, "coordinatorId", "must be positive")
	}

	now := uc.timeProvider.Now()
	from := now.AddDate(0, 0, -uc.opts.WindowDays)

	var (
		chunks       []*domain.Chunk
		customers    []*domain.Customer
		transactions []*domain.Transaction

		mu       sync.Mutex
		degraded []string
	)

	fail := func(source string, err error) {
		uc.logger.Warn("GetDashboardSummary: source %s unavailable for coordinator=%d: %v", source, req.CoordinatorID, err)
		mu.Lock()
		degraded = append(degraded, source)
		mu.Unlock()
	}

	var g errgroup.Group

	g.Go(func() error {
		sourceCtx, cancel := uc.sourceContext(ctx)
		defer cancel()
		list, err := uc.chunkRepo.ListByOwner(sourceCtx, req.CoordinatorID)
		if err != nil {
			fail(SourceChunks, err)
			return nil
		}
		chunks = list
		return nil
	})

	g.Go(func() error {
		sourceCtx, cancel := uc.sourceContext(ctx)
		defer cancel()
		list, err := uc.customers.ListByCoordinator(sourceCtx, req.CoordinatorID)
		if err != nil {
			fail(SourceCustomers, err)
			return nil
		}
		customers = list
		return nil
	})

	g.Go(func() error {
		sourceCtx, cancel := uc.sourceContext(ctx)
		defer cancel()
		list, err := uc.transactions.ListTransactions(sourceCtx, req.CoordinatorID, from, now)
		if err != nil {
			fail(SourceTransactions, err)
			return nil
		}
		transactions = list
		return nil
	})

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	metrics := computeMetrics(chunks, customers, transactions, from)
	alerts := deriveAlerts(metrics, transactions, uc.opts.WindowDays)

	degraded = orderSources(degraded)
	for _, source := range degraded {
		alerts = append(alerts, Alert{
			Type:    AlertWarning,
			Source:  source,
			Message: fmt.Sprintf("%s data is temporarily unavailable", source),
		})
	}

	if customers == nil {
		customers = []*domain.Customer{}
	}

	uc.logger.Info("GetDashboardSummary: coordinator=%d, chunks=%d, customers=%d, transactions=%d, degraded=%v",
		req.CoordinatorID, len(chunks), len(customers), len(transactions), degraded)

	return &Response{
		Metrics:            metrics,
		ParkingLocations:   groupByParking(chunks),
		Customers:          customers,
		RecentTransactions: recentTransactions(transactions, domain.RecentTransactionsLimit),
		Alerts:             alerts,
		DegradedSources:    degraded,
		GeneratedAt:        now,
	}, nil
}

func (uc *UseCase) sourceContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if uc.opts.SourceTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, uc.opts.SourceTimeout)
}

// orderSources приводит список отказавших источников к стабильному порядку
func orderSources(sources []string) []string {
	result := make([]string, 0, len(sources))
	for _, s := range []string{SourceChunks, SourceCustomers, SourceTransactions} {
		for _, d := range sources {
			if d == s {
				result = append(result, s)
			}
		}
	}
	return result
}
