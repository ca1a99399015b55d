package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// Ledger defines the persistence operations for bookings.
// The service layer depends on this interface, not the concrete snapshot
// implementation, which allows the service to be unit-tested with a mock.
type Ledger interface {
	// List returns every booking in insertion order.
	List() []domain.Booking

	// ListByUser returns the bookings owned by userID, in insertion order.
	// Always returns a non-nil slice.
	ListByUser(userID int64) []domain.Booking

	// Get retrieves a booking by id. Returns domain.ErrNotFound if absent.
	Get(id string) (domain.Booking, error)

	// Append adds a new booking and persists the snapshot.
	Append(ctx context.Context, b domain.Booking) error

	// Replace overwrites the booking with the same id and persists the
	// snapshot. Returns domain.ErrNotFound if no such booking exists.
	Replace(ctx context.Context, b domain.Booking) error

	// Remove deletes a booking by id and persists the snapshot.
	// Returns domain.ErrNotFound if no such booking exists.
	Remove(ctx context.Context, id string) error
}

// BookingLedger is the snapshot-backed Ledger implementation: an in-memory
// ordered collection guarded by a mutex, rewritten in full to the blob store
// on every mutation.
type BookingLedger struct {
	mu       sync.RWMutex
	blob     BlobStore
	bookings []domain.Booking
}

// NewBookingLedger constructs an empty ledger over the given blob store.
// Call Load before first use to pick up an existing snapshot.
func NewBookingLedger(blob BlobStore) *BookingLedger {
	return &BookingLedger{blob: blob}
}

// Load replaces the in-memory collection with the persisted snapshot.
// A missing snapshot blob is not an error: the ledger starts empty.
func (l *BookingLedger) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	raw, err := l.blob.Get(ctx, KeyBookings)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			l.bookings = nil
			return nil
		}
		return fmt.Errorf("store.BookingLedger.Load: %w", err)
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		return fmt.Errorf("store.BookingLedger.Load: decode snapshot: %w", err)
	}
	l.bookings = bookings
	return nil
}

// List returns a copy of every booking in insertion order.
func (l *BookingLedger) List() []domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Booking, len(l.bookings))
	copy(out, l.bookings)
	return out
}

// ListByUser returns a copy of the bookings owned by userID.
func (l *BookingLedger) ListByUser(userID int64) []domain.Booking {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []domain.Booking{}
	for _, b := range l.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

// Get retrieves a booking by id.
func (l *BookingLedger) Get(id string) (domain.Booking, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, b := range l.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return domain.Booking{}, fmt.Errorf("store.BookingLedger.Get: %q: %w", id, domain.ErrNotFound)
}

// Append adds a booking and persists the full snapshot.
func (l *BookingLedger) Append(ctx context.Context, b domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.bookings = append(l.bookings, b)
	if err := l.persistLocked(ctx); err != nil {
		// Roll the in-memory state back so memory and blob never diverge.
		l.bookings = l.bookings[:len(l.bookings)-1]
		return fmt.Errorf("store.BookingLedger.Append: %w", err)
	}
	return nil
}

// Replace overwrites the booking with b's id and persists the full snapshot.
func (l *BookingLedger) Replace(ctx context.Context, b domain.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.bookings {
		if l.bookings[i].ID == b.ID {
			prev := l.bookings[i]
			l.bookings[i] = b
			if err := l.persistLocked(ctx); err != nil {
				l.bookings[i] = prev
				return fmt.Errorf("store.BookingLedger.Replace: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("store.BookingLedger.Replace: %q: %w", b.ID, domain.ErrNotFound)
}

// Remove deletes the booking with the given id and persists the full snapshot.
// Removal is a hard delete: cancelled bookings leave no trace in the ledger.
func (l *BookingLedger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.bookings {
		if l.bookings[i].ID == id {
			prev := l.bookings
			l.bookings = append(append([]domain.Booking{}, l.bookings[:i]...), l.bookings[i+1:]...)
			if err := l.persistLocked(ctx); err != nil {
				l.bookings = prev
				return fmt.Errorf("store.BookingLedger.Remove: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("store.BookingLedger.Remove: %q: %w", id, domain.ErrNotFound)
}

// persistLocked writes the whole collection as one JSON blob.
// Callers must hold l.mu.
func (l *BookingLedger) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(l.bookings)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return l.blob.Set(ctx, KeyBookings, raw, 0)
}
