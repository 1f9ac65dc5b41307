package create_chunk

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingSession     = "отсутствует сессия координатора"
	msgForbidden          = "нельзя создать чанк от имени другого координатора"
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

// Handle POST /api/v1/chunks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}

	var req CreateChunkRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /chunks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.OwnerID != nil && *req.OwnerID != ownerID {
		h.logger.Warn("POST /chunks - Owner mismatch: session=%d, body=%d", ownerID, *req.OwnerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	serviceReq, err := req.ToServiceRequest(ownerID)
	if err != nil {
		h.logger.Warn("POST /chunks - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	chunk, err := h.service.Create(r.Context(), serviceReq)
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			h.logger.Warn("POST /chunks - Validation failed: owner=%d: %v", ownerID, err)
			handlers.RespondValidationError(w, vErr)

		default:
			h.logger.Error("POST /chunks - Failed to create chunk: owner=%d, error=%v", ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /chunks - Chunk created successfully: chunk_id=%d, owner=%d, spots=%d",
		chunk.ID, ownerID, chunk.TotalSpots)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromChunk(chunk))
}
