package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// Directory defines the persistence operations for accounts.
type Directory interface {
	// Create assigns a fresh id to the account, stores it, and persists the
	// snapshot. The returned account carries the assigned id.
	Create(ctx context.Context, a domain.Account) (domain.Account, error)

	// Get retrieves an account by id. Returns domain.ErrNotFound if absent.
	Get(id int64) (domain.Account, error)

	// FindByEmail retrieves an account by exact, case-sensitive email match.
	// Returns domain.ErrNotFound if absent.
	FindByEmail(email string) (domain.Account, error)

	// IncrementBookings bumps the account's booking counter and persists the
	// snapshot. Returns domain.ErrNotFound if the account does not exist.
	IncrementBookings(ctx context.Context, id int64) error

	// List returns every account in insertion order.
	List() []domain.Account
}

// UserDirectory is the snapshot-backed Directory implementation.
//
// Account ids come from a monotonic counter seeded from max(id)+1 at load
// time, so ids stay unique regardless of how the collection shrinks or grows —
// they are never derived from the collection length.
type UserDirectory struct {
	mu       sync.RWMutex
	blob     BlobStore
	accounts []domain.Account
	nextID   int64
}

// NewUserDirectory constructs an empty directory over the given blob store.
// Call Load before first use to pick up an existing snapshot.
func NewUserDirectory(blob BlobStore) *UserDirectory {
	return &UserDirectory{blob: blob, nextID: 1}
}

// Load replaces the in-memory collection with the persisted snapshot and
// re-seeds the id counter. A missing snapshot blob is not an error.
func (d *UserDirectory) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := d.blob.Get(ctx, KeyUsers)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			d.accounts = nil
			d.nextID = 1
			return nil
		}
		return fmt.Errorf("store.UserDirectory.Load: %w", err)
	}

	var accounts []domain.Account
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return fmt.Errorf("store.UserDirectory.Load: decode snapshot: %w", err)
	}

	d.accounts = accounts
	d.nextID = 1
	for _, a := range accounts {
		if a.ID >= d.nextID {
			d.nextID = a.ID + 1
		}
	}
	return nil
}

// Count returns the number of registered accounts.
func (d *UserDirectory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}

// Create assigns the next id, stores the account, and persists the snapshot.
func (d *UserDirectory) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a.ID = d.nextID
	d.accounts = append(d.accounts, a)

	if err := d.persistLocked(ctx); err != nil {
		d.accounts = d.accounts[:len(d.accounts)-1]
		return domain.Account{}, fmt.Errorf("store.UserDirectory.Create: %w", err)
	}
	d.nextID++
	return a, nil
}

// Get retrieves an account by id.
func (d *UserDirectory) Get(id int64) (domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.accounts {
		if a.ID == id {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("store.UserDirectory.Get: %d: %w", id, domain.ErrNotFound)
}

// FindByEmail retrieves an account by exact email match.
// The comparison is case-sensitive on purpose: that is the registered
// contract, and relaxing it would silently change which logins succeed.
func (d *UserDirectory) FindByEmail(email string) (domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, a := range d.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Account{}, fmt.Errorf("store.UserDirectory.FindByEmail: %q: %w", email, domain.ErrNotFound)
}

// IncrementBookings bumps the booking counter of the given account.
func (d *UserDirectory) IncrementBookings(ctx context.Context, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.accounts {
		if d.accounts[i].ID == id {
			d.accounts[i].BookingsCount++
			if err := d.persistLocked(ctx); err != nil {
				d.accounts[i].BookingsCount--
				return fmt.Errorf("store.UserDirectory.IncrementBookings: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("store.UserDirectory.IncrementBookings: %d: %w", id, domain.ErrNotFound)
}

// List returns a copy of every account in insertion order.
func (d *UserDirectory) List() []domain.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Account, len(d.accounts))
	copy(out, d.accounts)
	return out
}

// persistLocked writes the whole collection as one JSON blob.
// Callers must hold d.mu.
func (d *UserDirectory) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(d.accounts)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return d.blob.Set(ctx, KeyUsers, raw, 0)
}
