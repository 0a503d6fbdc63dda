package domain

import "github.com/tablebook/reservation-service/pkg/types"

// Zone is a named subdivision of the venue with its own table list
type Zone struct {
	ID     string
	Name   string
	Tables []int
}

// HasTable returns true if the table number belongs to the zone
func (z Zone) HasTable(table int) bool {
	for _, t := range z.Tables {
		if t == table {
			return true
		}
	}
	return false
}

// VenueConfig is the immutable venue configuration, supplied at startup
type VenueConfig struct {
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	LastBookingTime     types.TimeString
	SlotIntervalMinutes int
	LookAheadDays       int
	MaxPartySize        int
	Zones               []Zone
}

// ZoneByID looks up a zone by its identifier
func (c VenueConfig) ZoneByID(id string) (Zone, bool) {
	for _, z := range c.Zones {
		if z.ID == id {
			return z, true
		}
	}
	return Zone{}, false
}

// TablesForZone returns the table list of a zone, nil for an unknown zone
func (c VenueConfig) TablesForZone(id string) []int {
	z, ok := c.ZoneByID(id)
	if !ok {
		return nil
	}
	return z.Tables
}
