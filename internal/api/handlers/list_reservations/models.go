package list_reservations

import (
	"github.com/tablebook/reservation-service/internal/domain"
)

// ReservationResponse HTTP модель бронирования
type ReservationResponse struct {
	ID          int64  `json:"id"`
	RequesterID int64  `json:"requesterId"`
	FullName    string `json:"fullName"`
	Phone       string `json:"phone"`
	Zone        string `json:"zone"`
	TableNumber int    `json:"tableNumber"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	PartySize   int    `json:"partySize"`
	Status      string `json:"status"`
}

// ListReservationsResponse HTTP response model
type ListReservationsResponse struct {
	Scope        string                `json:"scope"`
	Reservations []ReservationResponse `json:"reservations"`
}

// StatsResponse сводка по бронированиям
type StatsResponse struct {
	Total   int64 `json:"total"`
	Pending int64 `json:"pending"`
	Today   int64 `json:"today"`
}

// FromDomain конвертирует доменную модель в HTTP модель
func FromDomain(res *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          res.ID,
		RequesterID: res.RequesterID,
		FullName:    res.FullName,
		Phone:       res.Phone,
		Zone:        res.Zone,
		TableNumber: res.TableNumber,
		Date:        res.Date.Format(domain.DateFormat),
		StartTime:   res.StartTime.String(),
		PartySize:   res.PartySize,
		Status:      string(res.Status),
	}
}

// FromDomainList конвертирует список бронирований
func FromDomainList(list []*domain.Reservation) []ReservationResponse {
	result := make([]ReservationResponse, len(list))
	for i, res := range list {
		result[i] = FromDomain(res)
	}
	return result
}
