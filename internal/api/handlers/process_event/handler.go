package process_event

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingRequester   = "requesterId обязателен"
	msgRequesterMismatch  = "requesterId не совпадает с X-User-ID"
)

type Handler struct {
	dispatcher EventDispatcher
	logger     Logger
	events     *prometheus.CounterVec
}

// NewHandler создает обработчик событий диалога
// events может быть nil, если метрики выключены
func NewHandler(dispatcher EventDispatcher, logger Logger, events *prometheus.CounterVec) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		logger:     logger,
		events:     events,
	}
}

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ProcessEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.RequesterID == 0 {
		h.logger.Warn("POST /events - Missing requester ID")
		handlers.RespondBadRequest(w, msgMissingRequester)
		return
	}

	// Событие принимается только от имени аутентифицированного пользователя
	if userID, ok := middleware.UserIDFromContext(r.Context()); ok && userID != req.RequesterID {
		h.logger.Warn("POST /events - Requester mismatch: header=%d, body=%d", userID, req.RequesterID)
		handlers.RespondForbidden(w, msgRequesterMismatch)
		return
	}

	prompts, err := h.dispatcher.Dispatch(r.Context(), req.ToEvent())
	if err != nil {
		h.logger.Error("POST /events - Failed to process event: requester=%d, error=%v", req.RequesterID, err)
		h.countEvent("error")
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /events - Event processed: requester=%d, payload=%q, prompts=%d",
		req.RequesterID, req.Payload, len(prompts))
	h.countEvent("ok")
	handlers.RespondJSON(w, http.StatusOK, ProcessEventResponse{Prompts: prompts})
}

func (h *Handler) countEvent(outcome string) {
	if h.events != nil {
		h.events.WithLabelValues(outcome).Inc()
	}
}
