package update_sub_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

const (
	msgInvalidSubBookingID = "некорректный ID суб-бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingSession      = "отсутствует сессия координатора"
	msgNotFound            = "суб-бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgConflict            = "места больше недоступны, обновите данные и повторите"
)

type Handler struct {
	useCase UpdateAssignmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAssignmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sub-bookings/{subBookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subBookingID, err := handlers.PathID(r, "subBookingId")
	if err != nil {
		h.logger.Warn("PATCH /sub-bookings/{id} - Invalid sub-booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubBookingID)
		return
	}

	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req UpdateSubBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sub-bookings/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(ownerID, subBookingID)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("PATCH /sub-bookings/{id} - Validation failed: sub_booking_id=%d: %v", subBookingID, err)
			handlers.RespondValidationError(w, vErr)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("PATCH /sub-bookings/{id} - Access denied: sub_booking_id=%d, owner=%d", subBookingID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /sub-bookings/{id} - Failed to update: sub_booking_id=%d, error=%v", subBookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sub-bookings/{id} - Sub-booking updated: sub_booking_id=%d, spots=%d",
		subBookingID, result.SubBooking.AssignedSpots)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSubBooking(result.SubBooking))
}
