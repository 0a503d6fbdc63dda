package purge_reservations

import (
	"net/http"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/service/reservations"
)

const msgInvalidScope = "некорректная область очистки, ожидается outdated|cancelled"

// PurgePreviewResponse предпросмотр пакетного удаления
type PurgePreviewResponse struct {
	Scope string `json:"scope"`
	Count int64  `json:"count"`
}

// PurgeResponse итог пакетного удаления
type PurgeResponse struct {
	Scope   string `json:"scope"`
	Deleted int64  `json:"deleted"`
}

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

// HandlePreview GET /api/v1/reservations/purge
// Query params: scope (required, outdated|cancelled)
// Показывает количество без удаления
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	scope, ok := reservations.ParsePurgeScope(r.URL.Query().Get("scope"))
	if !ok {
		h.logger.Warn("GET /reservations/purge - Invalid scope: %q", r.URL.Query().Get("scope"))
		handlers.RespondBadRequest(w, msgInvalidScope)
		return
	}

	count, err := h.service.PurgePreview(r.Context(), scope)
	if err != nil {
		h.logger.Error("GET /reservations/purge - Preview failed: scope=%s, error=%v", scope, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /reservations/purge - Preview: scope=%s, count=%d", scope, count)
	handlers.RespondJSON(w, http.StatusOK, PurgePreviewResponse{Scope: string(scope), Count: count})
}

// HandleExecute POST /api/v1/reservations/purge
// Query params: scope (required, outdated|cancelled)
func (h *Handler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	scope, ok := reservations.ParsePurgeScope(r.URL.Query().Get("scope"))
	if !ok {
		h.logger.Warn("POST /reservations/purge - Invalid scope: %q", r.URL.Query().Get("scope"))
		handlers.RespondBadRequest(w, msgInvalidScope)
		return
	}

	deleted, err := h.service.Purge(r.Context(), scope)
	if err != nil {
		h.logger.Error("POST /reservations/purge - Failed: scope=%s, error=%v", scope, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reservations/purge - Purged: scope=%s, deleted=%d", scope, deleted)
	handlers.RespondJSON(w, http.StatusOK, PurgeResponse{Scope: string(scope), Deleted: deleted})
}
