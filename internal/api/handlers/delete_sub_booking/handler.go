package delete_sub_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
	deleteAssignment "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/delete_assignment"
)

const (
	msgInvalidSubBookingID = "некорректный ID суб-бронирования"
	msgMissingSession      = "отсутствует сессия координатора"
	msgNotFound            = "суб-бронирование не найдено"
	msgForbidden           = "доступ запрещен"
	msgConflict            = "состояние чанка изменилось, обновите данные и повторите"
)

// DeleteSubBookingResponse HTTP response model
type DeleteSubBookingResponse struct {
	ReleasedSpots int                     `json:"releasedSpots"`
	Chunk         *handlers.ChunkResponse `json:"chunk"`
}

type Handler struct {
	useCase DeleteAssignmentUseCase
	logger  Logger
}

func NewHandler(useCase DeleteAssignmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/sub-bookings/{subBookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	subBookingID, err := handlers.PathID(r, "subBookingId")
	if err != nil {
		h.logger.Warn("DELETE /sub-bookings/{id} - Invalid sub-booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSubBookingID)
		return
	}

	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &deleteAssignment.Request{
		OwnerID:      ownerID,
		SubBookingID: subBookingID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("DELETE /sub-bookings/{id} - Access denied: sub_booking_id=%d, owner=%d", subBookingID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, domain.ErrConflict):
			handlers.RespondConflict(w, msgConflict)

		default:
			h.logger.Error("DELETE /sub-bookings/{id} - Failed to delete: sub_booking_id=%d, error=%v", subBookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /sub-bookings/{id} - Sub-booking deleted: sub_booking_id=%d, released=%d",
		subBookingID, result.ReleasedSpots)
	handlers.RespondJSON(w, http.StatusOK, DeleteSubBookingResponse{
		ReleasedSpots: result.ReleasedSpots,
		Chunk:         handlers.FromChunk(result.Chunk),
	})
}
