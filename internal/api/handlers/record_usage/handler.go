package record_usage

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	recordUsage "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/record_usage"
)

const (
	msgInvalidSubBookingID = "некорректный ID суб-бронирования"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingSession      = "отсутствует сессия координатора"
	msgNotFound            = "суб-бронирование не найдено"
	msgForbidden           = "доступ запрещен"
)

// RecordUsageRequest HTTP request model
type RecordUsageRequest struct {
	Hours float64 `json:"hours"`
}

type Handler struct {
	useCase RecordUsageUseCase
	logger  Logger
}

func NewHandler(useCase RecordUsageUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sub-bookings/{subBookingId}/usage
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

	var req RecordUsageRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sub-bookings/{id}/usage - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &recordUsage.Request{
		OwnerID:      ownerID,
		SubBookingID: subBookingID,
		Hours:        req.Hours,
	})
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			handlers.RespondValidationError(w, vErr)

		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("POST /sub-bookings/{id}/usage - Access denied: sub_booking_id=%d, owner=%d", subBookingID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /sub-bookings/{id}/usage - Failed: sub_booking_id=%d, error=%v", subBookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSubBooking(result.SubBooking))
}
