// Package service contains the business logic for the booking API.
// Services validate inputs, enforce the booking invariants, and orchestrate
// store calls. No HTTP and no serialization live here — services depend on
// store interfaces, not implementations.
package service

import (
	"time"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// Booking window rules. The lead time is measured from the wall clock at the
// moment of the check, so re-checking the same booking later can change the
// answer.
const (
	// MinLeadTime is how far in the future a booking must start.
	MinLeadTime = 7 * 24 * time.Hour

	// MinDuration and MaxDuration bound the rental length (end − start).
	MinDuration = 24 * time.Hour
	MaxDuration = 7 * 24 * time.Hour
)

// CheckAvailability reports whether the vehicle is free for [start, end]
// given the current ledger contents.
//
// It is a pure function over its arguments: no side effects, deterministic
// for a fixed now and booking snapshot. excludeID names a booking to skip
// during the overlap scan — pass the booking's own id when re-checking an
// update so it cannot conflict with itself, or "" otherwise.
//
// The function does not reject end before start; a degenerate interval simply
// collapses the overlap tests to point containment.
func CheckAvailability(now time.Time, bookings []domain.Booking, vehicleID int64, start, end time.Time, excludeID string) bool {
	if start.Before(now.Add(MinLeadTime)) {
		return false
	}

	for _, b := range bookings {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if b.Status == domain.StatusCompleted {
			continue
		}
		if b.VehicleID != vehicleID {
			continue
		}
		if intervalsOverlap(start, end, b.StartDate, b.EndDate) {
			return false
		}
	}
	return true
}

// intervalsOverlap reports whether [s1, e1] and [s2, e2] share any point,
// using four inclusive containment tests: either endpoint of one interval
// falling inside the other means overlap.
func intervalsOverlap(s1, e1, s2, e2 time.Time) bool {
	return withinInterval(s1, s2, e2) ||
		withinInterval(e1, s2, e2) ||
		withinInterval(s2, s1, e1) ||
		withinInterval(e2, s1, e1)
}

// withinInterval reports whether t falls inside [start, end], inclusive on
// both ends.
func withinInterval(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
