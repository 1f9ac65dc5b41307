package create_sub_booking

import (
	"context"

	createAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/create_assignment"
)

type CreateAssignmentUseCase interface {
	Execute(ctx context.Context, req *createAssignment.Request) (*createAssignment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
