package domain

import "time"

// BookingStatus is the lifecycle state of a booking.
// The stored status is authoritative: nothing advances it automatically based
// on elapsed time. It is set at creation and only changes when an update
// overwrites it.
type BookingStatus string

const (
	StatusUpcoming  BookingStatus = "upcoming"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
)

// ParseBookingStatus validates a wire-format status string.
// Returns ErrValidation for anything outside the known set.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch BookingStatus(s) {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return BookingStatus(s), nil
	}
	return "", Validationf("unknown status %q", s)
}

// DeriveStatus computes the status implied by the calendar: completed once the
// end date has passed, active while now falls inside [start, end], upcoming
// otherwise. It is used to default the status of a new booking when the caller
// does not supply one; it never mutates stored records.
func DeriveStatus(now, start, end time.Time) BookingStatus {
	if now.After(end) {
		return StatusCompleted
	}
	if now.Before(start) {
		return StatusUpcoming
	}
	return StatusActive
}

// Booking is a single vehicle reservation in the ledger.
//
// UserName and UserPhone are deliberate snapshots of the owning account at
// creation time; they do not track later account edits. VehicleName and
// ImageURL are likewise denormalized from the catalog entry.
// Start and end dates carry inclusive range semantics: two bookings touching
// on a shared day conflict.
type Booking struct {
	ID          string        `json:"id"`
	UserID      int64         `json:"user_id"`
	UserName    string        `json:"user_name"`
	UserPhone   string        `json:"user_phone,omitempty"`
	VehicleID   int64         `json:"vehicle_id"`
	VehicleName string        `json:"vehicle_name"`
	StartDate   time.Time     `json:"start_date"`
	EndDate     time.Time     `json:"end_date"`
	Status      BookingStatus `json:"status"`
	Amount      float64       `json:"amount"`
	ImageURL    string        `json:"image_url,omitempty"`
}
