package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/mgirard/lux-rentals/api/internal/auth"
	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/handler"
	"github.com/mgirard/lux-rentals/api/internal/service"
)

// mockBookingService implements handler.BookingServicer with function fields,
// so each test wires only the calls it expects.
type mockBookingService struct {
	CreateFn      func(ctx context.Context, ident domain.Identity, in service.CreateBookingInput) (domain.Booking, error)
	GetByIDFn     func(id string) (domain.Booking, error)
	UpdateFn      func(ctx context.Context, ident domain.Identity, id string, in service.UpdateBookingInput) (domain.Booking, error)
	CancelFn      func(ctx context.Context, ident domain.Identity, id string) error
	ListForUserFn func(ident domain.Identity) []domain.Booking
	ListAllFn     func() []domain.Booking
	IsAvailableFn func(vehicleID int64, start, end time.Time) (bool, error)
}

var _ handler.BookingServicer = (*mockBookingService)(nil)

func (m *mockBookingService) Create(ctx context.Context, ident domain.Identity, in service.CreateBookingInput) (domain.Booking, error) {
	return m.CreateFn(ctx, ident, in)
}

func (m *mockBookingService) GetByID(id string) (domain.Booking, error) {
	return m.GetByIDFn(id)
}

func (m *mockBookingService) Update(ctx context.Context, ident domain.Identity, id string, in service.UpdateBookingInput) (domain.Booking, error) {
	return m.UpdateFn(ctx, ident, id, in)
}

func (m *mockBookingService) Cancel(ctx context.Context, ident domain.Identity, id string) error {
	return m.CancelFn(ctx, ident, id)
}

func (m *mockBookingService) ListForUser(ident domain.Identity) []domain.Booking {
	return m.ListForUserFn(ident)
}

func (m *mockBookingService) ListAll() []domain.Booking {
	return m.ListAllFn()
}

func (m *mockBookingService) IsAvailable(vehicleID int64, start, end time.Time) (bool, error) {
	return m.IsAvailableFn(vehicleID, start, end)
}

// mockAuthService implements handler.AuthServicer.
type mockAuthService struct {
	RegisterFn  func(ctx context.Context, name, email, password, phone string) (domain.Identity, string, error)
	LoginFn     func(ctx context.Context, email, password string) (domain.Identity, string, error)
	LogoutFn    func(ctx context.Context, tokenID string) error
	ListUsersFn func() []domain.Identity
}

var _ handler.AuthServicer = (*mockAuthService)(nil)

func (m *mockAuthService) Register(ctx context.Context, name, email, password, phone string) (domain.Identity, string, error) {
	return m.RegisterFn(ctx, name, email, password, phone)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.Identity, string, error) {
	return m.LoginFn(ctx, email, password)
}

func (m *mockAuthService) Logout(ctx context.Context, tokenID string) error {
	return m.LogoutFn(ctx, tokenID)
}

func (m *mockAuthService) ListUsers() []domain.Identity {
	return m.ListUsersFn()
}

// mockCatalog implements handler.Cataloger.
type mockCatalog struct {
	AllFn func() []domain.Vehicle
	GetFn func(id int64) (domain.Vehicle, error)
}

var _ handler.Cataloger = (*mockCatalog)(nil)

func (m *mockCatalog) All() []domain.Vehicle {
	return m.AllFn()
}

func (m *mockCatalog) Get(id int64) (domain.Vehicle, error) {
	return m.GetFn(id)
}

// newTestServer wires a Server over the given mocks, leaving nil mocks as
// empty defaults that fail loudly if called.
func newTestServer(bookings *mockBookingService, authSvc *mockAuthService, catalog *mockCatalog) http.Handler {
	if bookings == nil {
		bookings = &mockBookingService{}
	}
	if authSvc == nil {
		authSvc = &mockAuthService{}
	}
	if catalog == nil {
		catalog = &mockCatalog{}
	}
	return handler.NewServer(bookings, authSvc, catalog, []byte("openapi: 3.0.3\n")).Routes()
}

// doRequest executes the request against the router and returns the recorder.
// A non-zero identity is injected into the request context, standing in for
// the authenticator middleware that main wires around the router.
func doRequest(h http.Handler, r *http.Request, ident domain.Identity) *httptest.ResponseRecorder {
	if ident.ID != 0 {
		ctx := auth.WithIdentity(r.Context(), ident)
		ctx = auth.WithTokenID(ctx, "test-token-id")
		r = r.WithContext(ctx)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
}

func clientIdentity() domain.Identity {
	return domain.Identity{
		ID:       7,
		Name:     "Client Test",
		Email:    "client@example.com",
		Role:     domain.RoleStandard,
		JoinDate: time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
	}
}

func adminIdentity() domain.Identity {
	return domain.Identity{ID: 1, Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin}
}
