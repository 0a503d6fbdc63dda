package domain

// Default configuration values
const (
	DefaultSlotIntervalMinutes = 30
	DefaultLookAheadDays       = 10
	DefaultMaxPartySize        = 20
)

// Business validation constants
const (
	MinNameLength  = 2
	MaxNameLength  = 50
	MinPhoneDigits = 10
	MinPartySize   = 1
)

// DateFormat is the wire format for calendar dates
const DateFormat = "2006-01-02" // YYYY-MM-DD
