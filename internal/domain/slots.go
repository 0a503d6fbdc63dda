package domain

import (
	"time"

	"github.com/tablebook/reservation-service/pkg/types"
)

// SlotsForDay возвращает упорядоченный список слотов на указанную дату:
// каждые open_time + k*interval, не позже времени последней брони.
// Для сегодняшней даты уже прошедшие слоты отбрасываются.
// Чистая функция: детерминирована при фиксированном now
func SlotsForDay(cfg VenueConfig, date time.Time, now time.Time) []types.TimeString {
	if IsDateInPast(date, now) {
		return []types.TimeString{}
	}

	all := make([]types.TimeString, 0)
	current := cfg.OpenTime

	for !current.IsAfter(cfg.LastBookingTime) {
		all = append(all, current)
		next, err := current.AddMinutes(cfg.SlotIntervalMinutes)
		if err != nil {
			break
		}
		current = next
	}

	if !IsSameDay(date, now) {
		return all
	}

	// Для сегодняшней даты убираем прошедшие слоты
	// Слот, совпадающий с текущей минутой, еще не прошел
	nowTime := types.NewTimeString(now)
	upcoming := make([]types.TimeString, 0, len(all))
	for _, slot := range all {
		if !slot.IsBefore(nowTime) {
			upcoming = append(upcoming, slot)
		}
	}

	return upcoming
}

// IsSlotOpen проверяет, что время входит в канонический список слотов дня.
// Проверка членством корректна для любого интервала, в отличие от
// проверки кратности минут
func IsSlotOpen(cfg VenueConfig, date time.Time, now time.Time, slot types.TimeString) bool {
	for _, s := range SlotsForDay(cfg, date, now) {
		if s == slot {
			return true
		}
	}
	return false
}

// IsSameDay проверяет, что две даты относятся к одному и тому же дню
func IsSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// IsDateInPast проверяет, что дата раньше сегодняшнего дня
func IsDateInPast(date, now time.Time) bool {
	return DateOnly(date).Before(DateOnly(now))
}

// DateOnly обнуляет время, оставляя только календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
