package get_dashboard_summary

import (
	"net/http"

	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingAllocationService/internal/api/middleware"
	getDashboardSummary "github.com/m04kA/SMC-ParkingAllocationService/internal/usecase/get_dashboard_summary"
)

const (
	msgInvalidCoordinatorID = "некорректный ID координатора"
	msgMissingSession       = "отсутствует сессия координатора"
	msgForbidden            = "доступ запрещен"
)

type Handler struct {
	useCase GetDashboardSummaryUseCase
	logger  Logger
}

func NewHandler(useCase GetDashboardSummaryUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/coordinators/{coordinatorId}/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	coordinatorID, err := handlers.PathID(r, "coordinatorId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCoordinatorID)
		return
	}

	sessionOwner, ok := middleware.GetCoordinatorID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingSession)
		return
	}
	if sessionOwner != coordinatorID {
		h.logger.Warn("GET /coordinators/{id}/dashboard - Access denied: coordinator=%d, session=%d", coordinatorID, sessionOwner)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getDashboardSummary.Request{CoordinatorID: coordinatorID})
	if err != nil {
		h.logger.Error("GET /coordinators/{id}/dashboard - Failed: coordinator=%d, error=%v", coordinatorID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
