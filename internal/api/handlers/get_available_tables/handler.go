package get_available_tables

import (
	"net/http"

	"github.com/tablebook/reservation-service/internal/api/handlers"
)

const (
	msgMissingDate = "дата обязательна"
	msgMissingTime = "время обязательно"
	msgMissingZone = "зона обязательна"
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailableTablesUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableTablesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-tables
// Query params: date (required, YYYY-MM-DD), time (required, HH:MM), zone (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /available-tables - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	timeStr := query.Get("time")
	if timeStr == "" {
		h.logger.Warn("GET /available-tables - Missing time")
		handlers.RespondBadRequest(w, msgMissingTime)
		return
	}

	zone := query.Get("zone")
	if zone == "" {
		h.logger.Warn("GET /available-tables - Missing zone")
		handlers.RespondBadRequest(w, msgMissingZone)
		return
	}

	useCaseReq, err := ToUseCaseRequest(dateStr, timeStr, zone)
	if err != nil {
		h.logger.Warn("GET /available-tables - Invalid date or time format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		h.logger.Error("GET /available-tables - Failed to get tables: zone=%s, date=%s, error=%v",
			zone, dateStr, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /available-tables - Tables retrieved: zone=%s, date=%s, time=%s, count=%d",
		zone, dateStr, timeStr, len(result.Tables))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
