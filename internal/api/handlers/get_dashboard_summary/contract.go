package get_dashboard_summary

import (
	"context"

	getDashboardSummary "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/get_dashboard_summary"
)

type GetDashboardSummaryUseCase interface {
	Execute(ctx context.Context, req *getDashboardSummary.Request) (*getDashboardSummary.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
