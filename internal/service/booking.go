package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/store"
)

// VehicleCataloger is the slice of the catalog the booking engine needs.
// *catalog.Catalog satisfies it.
type VehicleCataloger interface {
	Get(id int64) (domain.Vehicle, error)
}

// BookingService is the booking rules engine: it owns every mutation of the
// booking ledger and enforces the authorization and availability invariants.
type BookingService struct {
	ledger  store.Ledger
	users   store.Directory
	catalog VehicleCataloger

	// mu serializes the read-check-then-write sequence in Create and Update.
	// Without it two concurrent requests could both pass the availability
	// check before either write lands, double-booking the vehicle.
	mu sync.Mutex

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewBookingService constructs a BookingService over the given stores.
func NewBookingService(ledger store.Ledger, users store.Directory, cat VehicleCataloger) *BookingService {
	return &BookingService{ledger: ledger, users: users, catalog: cat, now: time.Now}
}

// WithClock overrides the service's notion of "now". Test hook.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// CreateBookingInput carries the caller-supplied fields of a new booking.
// Owner fields are never part of the input: they are stamped from the
// authenticated identity.
type CreateBookingInput struct {
	VehicleID int64
	StartDate time.Time
	EndDate   time.Time

	// Status is optional; when empty the calendar-implied status is used.
	Status domain.BookingStatus

	Amount float64

	// ImageURL is optional; when empty the vehicle's first catalog image is
	// used.
	ImageURL string
}

// UpdateBookingInput carries the partial fields of an update. Nil means
// "leave unchanged". Owner fields and the id are immutable.
type UpdateBookingInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *domain.BookingStatus
	Amount    *float64
}

// Create validates and appends a new booking.
//
// Requires an authenticated identity and an available vehicle. On success the
// booking is appended to the ledger, the owner's booking counter is
// incremented, and both snapshots are persisted. On any failure nothing is
// mutated.
func (s *BookingService) Create(ctx context.Context, ident domain.Identity, in CreateBookingInput) (domain.Booking, error) {
	if ident.ID == 0 {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", domain.ErrUnauthenticated)
	}

	vehicle, err := s.catalog.Get(in.VehicleID)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	if err := validateInterval(in.StartDate, in.EndDate); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	if in.Amount < 0 {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", domain.Validationf("amount must not be negative"))
	}

	status := in.Status
	if status == "" {
		status = domain.DeriveStatus(s.now(), in.StartDate, in.EndDate)
	}
	imageURL := in.ImageURL
	if imageURL == "" && len(vehicle.Images) > 0 {
		imageURL = vehicle.Images[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !CheckAvailability(s.now(), s.ledger.List(), in.VehicleID, in.StartDate, in.EndDate, "") {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", domain.ErrUnavailable)
	}

	booking := domain.Booking{
		ID:          uuid.NewString(),
		UserID:      ident.ID,
		UserName:    ident.Name,
		UserPhone:   ident.Phone,
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Brand + " " + vehicle.Name,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      status,
		Amount:      in.Amount,
		ImageURL:    imageURL,
	}

	if err := s.ledger.Append(ctx, booking); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}
	if err := s.users.IncrementBookings(ctx, ident.ID); err != nil {
		// The booking is already persisted; take it back out so a reported
		// failure does not leave the vehicle blocked for those dates.
		if rmErr := s.ledger.Remove(ctx, booking.ID); rmErr != nil {
			slog.Error("failed to remove booking after counter write failure",
				"booking_id", booking.ID, "error", rmErr)
		}
		return domain.Booking{}, fmt.Errorf("service.BookingService.Create: %w", err)
	}

	return booking, nil
}

// GetByID returns a single booking. The lookup is deliberately ungated:
// anyone holding the id may read the record.
func (s *BookingService) GetByID(id string) (domain.Booking, error) {
	b, err := s.ledger.Get(id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.GetByID: %w", err)
	}
	return b, nil
}

// Update shallow-merges the partial fields into an existing booking.
//
// The caller must own the booking or be an administrator. Whenever a date
// field is supplied, the merged interval is re-validated for duration and
// availability, excluding the booking itself from the overlap scan. A failed
// check leaves the stored record untouched.
func (s *BookingService) Update(ctx context.Context, ident domain.Identity, id string, in UpdateBookingInput) (domain.Booking, error) {
	if ident.ID == 0 {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", domain.ErrUnauthenticated)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.ledger.Get(id)
	if err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	if !ident.IsSelfOrAdmin(current.UserID) {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", domain.ErrUnauthorized)
	}

	merged := current
	if in.StartDate != nil {
		merged.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		merged.EndDate = *in.EndDate
	}
	if in.Status != nil {
		merged.Status = *in.Status
	}
	if in.Amount != nil {
		if *in.Amount < 0 {
			return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", domain.Validationf("amount must not be negative"))
		}
		merged.Amount = *in.Amount
	}

	if in.StartDate != nil || in.EndDate != nil {
		if err := validateInterval(merged.StartDate, merged.EndDate); err != nil {
			return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
		}
		if !CheckAvailability(s.now(), s.ledger.List(), merged.VehicleID, merged.StartDate, merged.EndDate, merged.ID) {
			return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", domain.ErrUnavailable)
		}
	}

	if err := s.ledger.Replace(ctx, merged); err != nil {
		return domain.Booking{}, fmt.Errorf("service.BookingService.Update: %w", err)
	}
	return merged, nil
}

// Cancel removes a booking from the ledger entirely — a hard delete, not a
// status flip. The caller must own the booking or be an administrator.
func (s *BookingService) Cancel(ctx context.Context, ident domain.Identity, id string) error {
	if ident.ID == 0 {
		return fmt.Errorf("service.BookingService.Cancel: %w", domain.ErrUnauthenticated)
	}

	b, err := s.ledger.Get(id)
	if err != nil {
		return fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	if !ident.IsSelfOrAdmin(b.UserID) {
		return fmt.Errorf("service.BookingService.Cancel: %w", domain.ErrUnauthorized)
	}

	if err := s.ledger.Remove(ctx, id); err != nil {
		return fmt.Errorf("service.BookingService.Cancel: %w", err)
	}
	return nil
}

// ListForUser returns the caller's own bookings, in ledger order.
// An absent identity yields an empty slice, not an error.
func (s *BookingService) ListForUser(ident domain.Identity) []domain.Booking {
	if ident.ID == 0 {
		return []domain.Booking{}
	}
	return s.ledger.ListByUser(ident.ID)
}

// ListAll returns the full ledger in order. There is no authorization gate
// inside this call; the admin routes gate access at the routing layer.
func (s *BookingService) ListAll() []domain.Booking {
	return s.ledger.List()
}

// IsAvailable answers the public availability query for a vehicle and range.
func (s *BookingService) IsAvailable(vehicleID int64, start, end time.Time) (bool, error) {
	if _, err := s.catalog.Get(vehicleID); err != nil {
		return false, fmt.Errorf("service.BookingService.IsAvailable: %w", err)
	}
	return CheckAvailability(s.now(), s.ledger.List(), vehicleID, start, end, ""), nil
}

// validateInterval enforces the rental window rules shared by Create and
// Update: end must not precede start, and the duration must be between 1 and
// 7 days inclusive.
func validateInterval(start, end time.Time) error {
	if end.Before(start) {
		return domain.Validationf("end date before start date")
	}
	d := end.Sub(start)
	if d < MinDuration {
		return domain.Validationf("rental must last at least 1 day")
	}
	if d > MaxDuration {
		return domain.Validationf("rental must not exceed 7 days")
	}
	return nil
}
