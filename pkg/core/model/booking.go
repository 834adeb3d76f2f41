// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// BookingStatus specifies the booking status enum. A booking starts
// as pending and an administrator may move it to any other status.
// No transition is forbidden, so it is not a state machine, but only
// the known statuses may be stored.
// Although this enum is numeric, it is (de)serialized as a string.
type BookingStatus int

// Valid values for the BookingStatus enum.
const (
	BookingStatusInvalid BookingStatus = iota // zero value is invalid

	BookingStatusPending
	BookingStatusConfirmed
	BookingStatusCancelled
	BookingStatusWaitlist
)

// ErrUnknownBookingStatus indicates that a given string may not be
// parsed as a known booking status.
var ErrUnknownBookingStatus = errors.New("unknown booking status")

// BookingStatusError indicates an invalid numeric booking status.
type BookingStatusError int

// Error implements the error interface.
func (e BookingStatusError) Error() string {
	return fmt.Sprintf("invalid booking status: %d", e)
}

// Validate returns nil if s is a known status.
func (s BookingStatus) Validate() error {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed,
		BookingStatusCancelled, BookingStatusWaitlist:
		return nil
	default:
		return BookingStatusError(s)
	}
}

// String converts s to its stored string. Invalid status panics.
func (s BookingStatus) String() string {
	switch s {
	case BookingStatusPending:
		return "pending"
	case BookingStatusConfirmed:
		return "confirmed"
	case BookingStatusCancelled:
		return "cancelled"
	case BookingStatusWaitlist:
		return "waitlist"
	default:
		panic(BookingStatusError(s))
	}
}

// ParseBookingStatus parses the stored string form of a status.
// For unknown strings, BookingStatusInvalid and ErrUnknownBookingStatus
// will be returned.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch s {
	case "pending":
		return BookingStatusPending, nil
	case "confirmed":
		return BookingStatusConfirmed, nil
	case "cancelled":
		return BookingStatusCancelled, nil
	case "waitlist":
		return BookingStatusWaitlist, nil
	default:
		return BookingStatusInvalid, ErrUnknownBookingStatus
	}
}
