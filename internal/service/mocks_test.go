package service_test

import (
	"context"
	"fmt"
	"time"

	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/service"
	"github.com/mgirard/lux-rentals/api/internal/store"
)

// mockLedger implements store.Ledger with configurable function fields.
// Unset fields behave like an empty ledger, so each test only wires what it
// exercises.
type mockLedger struct {
	ListFn       func() []domain.Booking
	ListByUserFn func(userID int64) []domain.Booking
	GetFn        func(id string) (domain.Booking, error)
	AppendFn     func(ctx context.Context, b domain.Booking) error
	ReplaceFn    func(ctx context.Context, b domain.Booking) error
	RemoveFn     func(ctx context.Context, id string) error
}

var _ store.Ledger = (*mockLedger)(nil)

func (m *mockLedger) List() []domain.Booking {
	if m.ListFn == nil {
		return []domain.Booking{}
	}
	return m.ListFn()
}

func (m *mockLedger) ListByUser(userID int64) []domain.Booking {
	if m.ListByUserFn == nil {
		return []domain.Booking{}
	}
	return m.ListByUserFn(userID)
}

func (m *mockLedger) Get(id string) (domain.Booking, error) {
	if m.GetFn == nil {
		return domain.Booking{}, fmt.Errorf("%q: %w", id, domain.ErrNotFound)
	}
	return m.GetFn(id)
}

func (m *mockLedger) Append(ctx context.Context, b domain.Booking) error {
	if m.AppendFn == nil {
		return nil
	}
	return m.AppendFn(ctx, b)
}

func (m *mockLedger) Replace(ctx context.Context, b domain.Booking) error {
	if m.ReplaceFn == nil {
		return nil
	}
	return m.ReplaceFn(ctx, b)
}

func (m *mockLedger) Remove(ctx context.Context, id string) error {
	if m.RemoveFn == nil {
		return nil
	}
	return m.RemoveFn(ctx, id)
}

// mockDirectory implements store.Directory with configurable function fields.
type mockDirectory struct {
	CreateFn            func(ctx context.Context, a domain.Account) (domain.Account, error)
	GetFn               func(id int64) (domain.Account, error)
	FindByEmailFn       func(email string) (domain.Account, error)
	IncrementBookingsFn func(ctx context.Context, id int64) error
	ListFn              func() []domain.Account
}

var _ store.Directory = (*mockDirectory)(nil)

func (m *mockDirectory) Create(ctx context.Context, a domain.Account) (domain.Account, error) {
	if m.CreateFn == nil {
		a.ID = 1
		return a, nil
	}
	return m.CreateFn(ctx, a)
}

func (m *mockDirectory) Get(id int64) (domain.Account, error) {
	if m.GetFn == nil {
		return domain.Account{}, fmt.Errorf("%d: %w", id, domain.ErrNotFound)
	}
	return m.GetFn(id)
}

func (m *mockDirectory) FindByEmail(email string) (domain.Account, error) {
	if m.FindByEmailFn == nil {
		return domain.Account{}, fmt.Errorf("%q: %w", email, domain.ErrNotFound)
	}
	return m.FindByEmailFn(email)
}

func (m *mockDirectory) IncrementBookings(ctx context.Context, id int64) error {
	if m.IncrementBookingsFn == nil {
		return nil
	}
	return m.IncrementBookingsFn(ctx, id)
}

func (m *mockDirectory) List() []domain.Account {
	if m.ListFn == nil {
		return []domain.Account{}
	}
	return m.ListFn()
}

// mockCatalog implements service.VehicleCataloger.
type mockCatalog struct {
	GetFn func(id int64) (domain.Vehicle, error)
}

var _ service.VehicleCataloger = (*mockCatalog)(nil)

func (m *mockCatalog) Get(id int64) (domain.Vehicle, error) {
	if m.GetFn == nil {
		return domain.Vehicle{}, fmt.Errorf("%d: %w", id, domain.ErrNotFound)
	}
	return m.GetFn(id)
}

// mockSessions implements store.SessionStore over a plain map.
type mockSessions struct {
	records map[string]domain.Identity
}

var _ store.SessionStore = (*mockSessions)(nil)

func newMockSessions() *mockSessions {
	return &mockSessions{records: make(map[string]domain.Identity)}
}

func (m *mockSessions) Save(_ context.Context, tokenID string, ident domain.Identity, _ time.Duration) error {
	m.records[tokenID] = ident
	return nil
}

func (m *mockSessions) Get(_ context.Context, tokenID string) (domain.Identity, error) {
	ident, ok := m.records[tokenID]
	if !ok {
		return domain.Identity{}, fmt.Errorf("%q: %w", tokenID, domain.ErrNotFound)
	}
	return ident, nil
}

func (m *mockSessions) Delete(_ context.Context, tokenID string) error {
	delete(m.records, tokenID)
	return nil
}
