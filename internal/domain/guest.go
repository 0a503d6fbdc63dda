package domain

import "time"

// GuestProfile represents a requester known to the venue.
// Created on first interaction; the contact is cached from the last
// committed reservation. The operator flag is derived from the static
// configuration list and is never stored here.
type GuestProfile struct {
	ID          int64
	RequesterID int64
	Username    *string
	FullName    string
	Phone       *string
	CreatedAt   time.Time
}
