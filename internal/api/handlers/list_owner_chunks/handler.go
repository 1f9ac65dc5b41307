package list_owner_chunks

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
)

const (
	msgInvalidOwnerID   = "некорректный ID координатора"
	msgInvalidAvailable = "параметр available должен быть true или false"
	msgMissingSession   = "отсутствует сессия координатора"
	msgForbidden        = "доступ запрещен"
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

// Handle GET /api/v1/owners/{ownerId}/chunks[?available=true]
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ownerID, err := handlers.PathID(r, "ownerId")
	if err != nil {
		h.logger.Warn("GET /owners/{id}/chunks - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	sessionOwner, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}
	if sessionOwner != ownerID {
		h.logger.Warn("GET /owners/{id}/chunks - Access denied: owner=%d, session=%d", ownerID, sessionOwner)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	availableOnly := false
	if raw := r.URL.Query().Get("available"); raw != "" {
		availableOnly, err = strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidAvailable)
			return
		}
	}

	list := h.service.ListByOwner
	if availableOnly {
		list = h.service.ListAvailable
	}

	result, err := list(r.Context(), ownerID)
	if err != nil {
		h.logger.Error("GET /owners/{id}/chunks - Failed to list chunks: owner=%d, available=%t, error=%v",
			ownerID, availableOnly, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/chunks - Retrieved %d chunks: owner=%d, available=%t", len(result), ownerID, availableOnly)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromChunks(result))
}
