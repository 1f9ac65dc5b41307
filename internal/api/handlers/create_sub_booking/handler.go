package create_sub_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	createAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/create_assignment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingSession     = "отсутствует сессия координатора"
	msgChunkNotFound      = "чанк не найден"
	msgCustomerNotFound   = "клиент не найден"
	msgForbidden          = "чанк принадлежит другому координатору"
	msgInProgress         = "запрос с этим Idempotency-Key еще выполняется"
	msgConflict           = "места больше недоступны, обновите данные и повторите"
)

type Handler struct {
	useCase CreateAssignmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAssignmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sub-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req CreateSubBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sub-bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.OwnerID != nil && *req.OwnerID != ownerID {
		h.logger.Warn("POST /sub-bookings - Owner mismatch: session=%d, body=%d", ownerID, *req.OwnerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID, r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.logger.Warn("POST /sub-bookings - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /sub-bookings - Validation failed: chunk_id=%d, customer_id=%d: %v",
				req.BulkBookingID, req.CustomerID, err)
			handlers.RespondValidationError(w, vErr)

		case errors.Is(err, createAssignment.ErrChunkNotFound):
			handlers.RespondNotFound(w, msgChunkNotFound)

		case errors.Is(err, createAssignment.ErrCustomerNotFound):
			handlers.RespondNotFound(w, msgCustomerNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /sub-bookings - Access denied: chunk_id=%d, owner=%d", req.BulkBookingID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createAssignment.ErrRequestInProgress):
			handlers.RespondConflict(w, msgInProgress)

		case errors.Is(err, domain.ErrConflict):
			h.logger.Warn("POST /sub-bookings - Capacity conflict: chunk_id=%d, spots=%d", req.BulkBookingID, req.AssignedSpots)
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("POST /sub-bookings - Failed to create sub-booking: chunk_id=%d, error=%v", req.BulkBookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}

	h.logger.Info("POST /sub-bookings - Sub-booking created successfully: sub_booking_id=%d, chunk_id=%d, replayed=%t",
		result.SubBooking.ID, result.SubBooking.ChunkID(), result.Replayed)
	handlers.RespondJSON(w, status, handlers.FromSubBooking(result.SubBooking))
}
