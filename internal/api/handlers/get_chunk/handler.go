package get_chunk

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

// Handle GET /api/v1/chunks/{chunkId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	chunkID, err := handlers.PathID(r, "chunkId")
	if err != nil {
		h.logger.Warn("GET /chunks/{id} - Invalid chunk ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChunkID)
		return
	}

	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	chunk, err := h.service.GetByID(r.Context(), chunkID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.logger.Warn("GET /chunks/{id} - Chunk not found: chunk_id=%d", chunkID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, domain.ErrAccessDenied):
			h.logger.Warn("GET /chunks/{id} - Access denied: chunk_id=%d, owner=%d", chunkID, ownerID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /chunks/{id} - Failed to get chunk: chunk_id=%d, error=%v", chunkID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromChunk(chunk))
}
