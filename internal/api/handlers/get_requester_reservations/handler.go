package get_requester_reservations

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tablebook/reservation-service/internal/api/handlers"
	"github.com/tablebook/reservation-service/internal/api/middleware"
	"github.com/tablebook/reservation-service/internal/domain"
)

const (
	msgInvalidRequesterID = "некорректный ID пользователя"
	msgForbidden          = "нельзя смотреть чужие бронирования"
)

// ReservationItem HTTP модель бронирования пользователя
type ReservationItem struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Zone      string `json:"zone"`
	Table     int    `json:"table"`
	PartySize int    `json:"partySize"`
	Status    string `json:"status"`
}

// RequesterReservationsResponse HTTP response model
type RequesterReservationsResponse struct {
	Upcoming []ReservationItem `json:"upcoming"`
	Past     []ReservationItem `json:"past"`
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

// Handle GET /api/v1/users/{userId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	requesterID, err := strconv.ParseInt(vars["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{id}/reservations - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequesterID)
		return
	}

	// Пользователь видит только свои бронирования
	if authID, ok := middleware.UserIDFromContext(r.Context()); ok && authID != requesterID {
		h.logger.Warn("GET /users/{id}/reservations - Forbidden: auth=%d, requested=%d", authID, requesterID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	own, err := h.service.ListForRequester(r.Context(), requesterID)
	if err != nil {
		h.logger.Error("GET /users/{id}/reservations - Failed: requester=%d, error=%v", requesterID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{id}/reservations - Retrieved: requester=%d, upcoming=%d, past=%d",
		requesterID, len(own.Upcoming), len(own.Past))
	handlers.RespondJSON(w, http.StatusOK, RequesterReservationsResponse{
		Upcoming: toItems(own.Upcoming),
		Past:     toItems(own.Past),
	})
}

func toItems(list []*domain.Reservation) []ReservationItem {
	items := make([]ReservationItem, len(list))
	for i, res := range list {
		items[i] = ReservationItem{
			ID:        res.ID,
			Date:      res.Date.Format(domain.DateFormat),
			StartTime: res.StartTime.String(),
			Zone:      res.Zone,
			Table:     res.TableNumber,
			PartySize: res.PartySize,
			Status:    string(res.Status),
		}
	}
	return items
}
