package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tablebook/reservation-service/pkg/types"
)

func testVenue() VenueConfig {
	return VenueConfig{
		OpenTime:            "12:00",
		CloseTime:           "23:00",
		LastBookingTime:     "22:00",
		SlotIntervalMinutes: 30,
		LookAheadDays:       10,
		MaxPartySize:        20,
		Zones: []Zone{
			{ID: "main_hall", Name: "Основной зал", Tables: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
			{ID: "terrace", Name: "Терраса", Tables: []int{11, 12, 13, 14, 15}},
		},
	}
}

func TestSlotsForDayFutureDate(t *testing.T) {
	cfg := testVenue()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	slots := SlotsForDay(cfg, date, now)

	// 12:00..22:00 с шагом 30 минут, включая границы
	assert.Len(t, slots, 21)
	assert.Equal(t, types.TimeString("12:00"), slots[0])
	assert.Equal(t, types.TimeString("22:00"), slots[len(slots)-1])
	assert.NotContains(t, slots, types.TimeString("22:30"))
	assert.NotContains(t, slots, types.TimeString("11:30"))
}

func TestSlotsForDayTodayFiltersPastSlots(t *testing.T) {
	cfg := testVenue()
	now := time.Date(2026, 9, 1, 18, 10, 0, 0, time.UTC)

	slots := SlotsForDay(cfg, now, now)

	// Все слоты раньше 18:10 отброшены, первый оставшийся 18:30
	assert.Equal(t, types.TimeString("18:30"), slots[0])
	for _, slot := range slots {
		assert.False(t, slot.IsBefore("18:10"), "slot %s is in the past", slot)
	}
}

func TestSlotsForDayTodaySlotAtCurrentMinuteSurvives(t *testing.T) {
	cfg := testVenue()
	now := time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC)

	slots := SlotsForDay(cfg, now, now)

	assert.Equal(t, types.TimeString("18:30"), slots[0])
}

func TestSlotsForDayPastDateIsEmpty(t *testing.T) {
	cfg := testVenue()
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, SlotsForDay(cfg, date, now))
}

func TestSlotsForDayTodayAfterLastBooking(t *testing.T) {
	cfg := testVenue()
	now := time.Date(2026, 9, 1, 22, 30, 0, 0, time.UTC)

	assert.Empty(t, SlotsForDay(cfg, now, now))
}

func TestSlotsForDayUnevenInterval(t *testing.T) {
	cfg := testVenue()
	cfg.SlotIntervalMinutes = 45

	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 1)

	slots := SlotsForDay(cfg, date, now)

	// 12:00, 12:45, ... последний не позже 22:00
	assert.Equal(t, types.TimeString("12:00"), slots[0])
	assert.Equal(t, types.TimeString("21:45"), slots[len(slots)-1])
	for i := 1; i < len(slots); i++ {
		prev, _ := slots[i-1].Minutes()
		cur, _ := slots[i].Minutes()
		assert.Equal(t, 45, cur-prev)
	}
}

func TestIsSlotOpen(t *testing.T) {
	cfg := testVenue()
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	date := now.AddDate(0, 0, 2)

	tests := []struct {
		name string
		slot types.TimeString
		want bool
	}{
		{name: "opening slot", slot: "12:00", want: true},
		{name: "middle slot", slot: "18:30", want: true},
		{name: "last booking slot", slot: "22:00", want: true},
		{name: "after last booking", slot: "22:30", want: false},
		{name: "before opening", slot: "11:30", want: false},
		{name: "not aligned to interval", slot: "12:15", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSlotOpen(cfg, date, now, tt.slot))
		})
	}
}

func TestDateHelpers(t *testing.T) {
	now := time.Date(2026, 9, 1, 23, 59, 0, 0, time.UTC)

	assert.True(t, IsSameDay(now, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, IsSameDay(now, now.AddDate(0, 0, 1)))

	assert.True(t, IsDateInPast(now.AddDate(0, 0, -1), now))
	// Сегодня — не прошлое, даже поздним вечером
	assert.False(t, IsDateInPast(now, now))
	assert.False(t, IsDateInPast(now.AddDate(0, 0, 1), now))

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), DateOnly(now))
}
