package delete_sub_booking

import (
	"context"

	deleteAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/delete_assignment"
)

type DeleteAssignmentUseCase interface {
	Execute(ctx context.Context, req *deleteAssignment.Request) (*deleteAssignment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
