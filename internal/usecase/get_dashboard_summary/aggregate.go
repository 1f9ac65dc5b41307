package get_dashboard_summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

// computeMetrics считает показатели по чанкам, клиентам и транзакциям окна
func computeMetrics(chunks []*domain.Chunk, customers []*domain.Customer, transactions []*domain.Transaction, from time.Time) Metrics {
	var m Metrics

	for _, c := range chunks {
		m.TotalPurchasedSpots += c.TotalSpots
		m.TotalUsedSpots += c.UsedSpots
		m.TotalAvailableSpots += c.AvailableSpots()

		switch c.Status {
		case domain.ChunkStatusActive:
			m.ActiveChunks++
		case domain.ChunkStatusFull:
			m.FullChunks++
		case domain.ChunkStatusExpired:
			m.ExpiredChunks++
		}
	}

	for _, t := range transactions {
		if t.CountsAsRevenue() && !t.CreatedAt.Before(from) {
			m.TotalRevenue += t.Amount
		}
	}

	seen := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		seen[c.ID] = struct{}{}
	}
	m.TotalCustomers = len(seen)

	return m
}

// groupByParking группирует чанки по названию парковки
func groupByParking(chunks []*domain.Chunk) []ParkingLocation {
	index := make(map[string]int)
	result := make([]ParkingLocation, 0)

	for _, c := range chunks {
		i, ok := index[c.ParkingName]
		if !ok {
			i = len(result)
			index[c.ParkingName] = i
			result = append(result, ParkingLocation{ParkingName: c.ParkingName})
		}
		result[i].Chunks++
		result[i].TotalSpots += c.TotalSpots
		result[i].AvailableSpots += c.AvailableSpots()
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].ParkingName < result[j].ParkingName })
	return result
}

// recentTransactions последние limit транзакций, новые первыми
func recentTransactions(transactions []*domain.Transaction, limit int) []*domain.Transaction {
	sorted := make([]*domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// deriveAlerts эвристические предупреждения
func deriveAlerts(m Metrics, transactions []*domain.Transaction, windowDays int) []Alert {
	alerts := make([]Alert, 0)

	if m.TotalPurchasedSpots > 0 &&
		float64(m.TotalAvailableSpots) < domain.LowInventoryThreshold*float64(m.TotalPurchasedSpots) {
		alerts = append(alerts, Alert{
			Type: AlertLowInventory,
			Message: fmt.Sprintf("Only %d of %d purchased spots are still available",
				m.TotalAvailableSpots, m.TotalPurchasedSpots),
		})
	}

	if len(transactions) > 0 {
		pending := 0
		for _, t := range transactions {
			if t.IsPending() {
				pending++
			}
		}
		alerts = append(alerts, Alert{
			Type: AlertInfo,
			Message: fmt.Sprintf("%d transactions in the last %d days, %d pending",
				len(transactions), windowDays, pending),
		})
	}

	return alerts
}
