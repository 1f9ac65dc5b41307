package change_sub_booking_status

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	changeStatus "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/change_assignment_status"
)

const (
	msgInvalidSubBookingID = "некорректный ID суб-бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingSession      = "отсутствует сессия координатора"
	msgNotFound            = "суб-бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgConflict            = "места больше недоступны, обновите данные и повторите"
)

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string `json:"status"` // "active" | "suspended"
}

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/sub-bookings/{subBookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subBookingID, err := handlers.PathID(r, "subBookingId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidSubBookingID)
		return
	}

	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /sub-bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		OwnerID:      ownerID,
		SubBookingID: subBookingID,
		Status:       domain.SubBookingStatus(req.Status),
	})
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("PATCH /sub-bookings/{id}/status - Rejected: sub_booking_id=%d, status=%s: %v",
				subBookingID, req.Status, err)
			handlers.RespondValidationError(w, vErr)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("PATCH /sub-bookings/{id}/status - Failed: sub_booking_id=%d, error=%v", subBookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /sub-bookings/{id}/status - sub_booking_id=%d, status=%s, changed=%t",
		subBookingID, result.SubBooking.Status, result.Changed)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSubBooking(result.SubBooking))
}
