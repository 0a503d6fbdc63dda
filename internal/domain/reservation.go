package domain

import (
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// ReservationStatus represents the status of a table reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// ParseReservationStatus converts a raw string into a ReservationStatus
func ParseReservationStatus(s string) (ReservationStatus, bool) {
	switch ReservationStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return ReservationStatus(s), true
	default:
		return "", false
	}
}

// Reservation represents a table reservation at the venue
type Reservation struct {
	ID          int64
	RequesterID int64
	FullName    string
	Phone       string
	Zone        string
	TableNumber int
	Date        time.Time // calendar date, time-of-day part is ignored
	StartTime   types.TimeString
	PartySize   int
	Status      ReservationStatus
	CreatedAt   time.Time
}

// IsActive returns true if the reservation counts against table availability
func (r *Reservation) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeConfirmed returns true if an operator may confirm the reservation
func (r *Reservation) CanBeConfirmed() bool {
	return r.Status == StatusPending
}

// CanBeCancelled returns true if an operator may cancel the reservation
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsPast returns true if the reservation's date/time is strictly before now
func (r *Reservation) IsPast(now time.Time) bool {
	date := DateOnly(r.Date)
	today := DateOnly(now)

	if date.Before(today) {
		return true
	}
	if date.Equal(today) {
		return r.StartTime.IsBefore(types.NewTimeString(now))
	}
	return false
}

// ReservationFilter фильтр для выборки бронирований
type ReservationFilter struct {
	RequesterID *int64             // Фильтр по пользователю (опционально)
	Zone        *string            // Фильтр по зоне (опционально)
	Status      *ReservationStatus // Фильтр по статусу (опционально)
	StartDate   *time.Time         // Начало периода, включительно (опционально)
	EndDate     *time.Time         // Конец периода, включительно (опционально)
	StartTime   *types.TimeString  // Точное время слота (опционально)
	ActiveOnly  bool               // Только pending/confirmed
}

// ActiveStatuses статусы, которые учитываются при расчете доступности столиков
var ActiveStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}
