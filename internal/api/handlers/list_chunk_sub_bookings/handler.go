package list_chunk_sub_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

const (
	msgInvalidChunkID = "некорректный ID чанка"
	msgMissingSession = "отсутствует сессия координатора"
	msgNotFound       = "чанк не найден"
	msgForbidden      = "доступ запрещен"
)

type Handler struct {
	service ChunkService
	logger  Logger
}

func NewHandler(service ChunkService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/chunks/{chunkId}/sub-bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chunkID, err := handlers.PathID(r, "chunkId")
	if err != nil {
		h.logger.Warn("GET /chunks/{id}/sub-bookings - Invalid chunk ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChunkID)
		return
	}

	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	subBookings, err := h.service.ListSubBookings(r.Context(), chunkID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("GET /chunks/{id}/sub-bookings - Access denied: chunk_id=%d, owner=%d", chunkID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /chunks/{id}/sub-bookings - Failed to list: chunk_id=%d, error=%v", chunkID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSubBookings(subBookings))
}
