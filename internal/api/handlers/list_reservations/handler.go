package list_reservations

import (
	"errors"
	"net/http"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/service/reservations"
)

const msgInvalidScope = "некорректная область выборки, ожидается all|pending|confirmed|today|tomorrow"

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: scope (optional, all|pending|confirmed|today|tomorrow)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scope := reservations.ListScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = reservations.ScopeAll
	}

	list, err := h.service.List(r.Context(), scope)
	if err != nil {
		if errors.Is(err, reservations.ErrInvalidInput) {
			h.logger.Warn("GET /reservations - Invalid scope: %q", scope)
			handlers.RespondBadRequest(w, msgInvalidScope)
			return
		}

		h.logger.Error("GET /reservations - Failed to list: scope=%s, error=%v", scope, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations - Listed: scope=%s, count=%d", scope, len(list))
	handlers.RespondJSON(w, http.StatusOK, ListReservationsResponse{
		Scope:        string(scope),
		Reservations: FromDomainList(list),
	})
}

// HandleStats GET /api/v1/reservations/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.logger.Error("GET /reservations/stats - Failed to get stats: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/stats - Stats retrieved: total=%d, pending=%d, today=%d",
		stats.Total, stats.Pending, stats.Today)
	handlers.RespondJSON(w, http.StatusOK, StatsResponse{
		Total:   stats.Total,
		Pending: stats.Pending,
		Today:   stats.Today,
	})
}
