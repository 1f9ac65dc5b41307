package record_usage

import (
	"context"

	recordUsage "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/record_usage"
)

type RecordUsageUseCase interface {
	Execute(ctx context.Context, req *recordUsage.Request) (*recordUsage.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
