package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tablebook/reservation-service/pkg/types"
)

func TestParseReservationStatus(t *testing.T) {
	for _, valid := range []string{"pending", "confirmed", "cancelled"} {
		status, ok := ParseReservationStatus(valid)
		assert.True(t, ok)
		assert.Equal(t, ReservationStatus(valid), status)
	}

	_, ok := ParseReservationStatus("archived")
	assert.False(t, ok)
	_, ok = ParseReservationStatus("")
	assert.False(t, ok)
}

func TestReservationStatusPredicates(t *testing.T) {
	tests := []struct {
		status      ReservationStatus
		active      bool
		confirmable bool
		cancellable bool
	}{
		{status: StatusPending, active: true, confirmable: true, cancellable: true},
		{status: StatusConfirmed, active: true, confirmable: false, cancellable: true},
		{status: StatusCancelled, active: false, confirmable: false, cancellable: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			res := &Reservation{Status: tt.status}
			assert.Equal(t, tt.active, res.IsActive())
			assert.Equal(t, tt.confirmable, res.CanBeConfirmed())
			assert.Equal(t, tt.cancellable, res.CanBeCancelled())
		})
	}
}

func TestReservationIsPast(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		slot string
		want bool
	}{
		{name: "yesterday", date: now.AddDate(0, 0, -1), slot: "19:00", want: true},
		{name: "today earlier slot", date: now, slot: "12:00", want: true},
		{name: "today current minute", date: now, slot: "15:00", want: false},
		{name: "today later slot", date: now, slot: "19:00", want: false},
		{name: "tomorrow early slot", date: now.AddDate(0, 0, 1), slot: "12:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &Reservation{Date: tt.date, StartTime: types.TimeString(tt.slot)}
			assert.Equal(t, tt.want, res.IsPast(now))
		})
	}
}

func TestZoneHasTable(t *testing.T) {
	zone := Zone{ID: "terrace", Tables: []int{11, 12}}

	assert.True(t, zone.HasTable(11))
	assert.False(t, zone.HasTable(1))
}

func TestVenueConfigZoneByID(t *testing.T) {
	cfg := testVenue()

	zone, ok := cfg.ZoneByID("terrace")
	assert.True(t, ok)
	assert.Equal(t, "terrace", zone.ID)

	_, ok = cfg.ZoneByID("rooftop")
	assert.False(t, ok)

	assert.Equal(t, []int{11, 12, 13, 14, 15}, cfg.TablesForZone("terrace"))
	assert.Empty(t, cfg.TablesForZone("rooftop"))
}
