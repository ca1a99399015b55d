// Package handler implements the HTTP layer of the booking API.
// All handlers are methods on Server; they decode requests, call into the
// services, and map domain errors to HTTP status codes. Methods are split
// into resource-specific files (auth.go, booking.go, etc.) but all share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/middleware"
	"github.com/mgirard/lux-rentals/api/internal/service"
)

// BookingServicer defines the booking engine operations the handlers depend
// on. Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the store or service layer.
type BookingServicer interface {
	Create(ctx context.Context, ident domain.Identity, in service.CreateBookingInput) (domain.Booking, error)
	GetByID(id string) (domain.Booking, error)
	Update(ctx context.Context, ident domain.Identity, id string, in service.UpdateBookingInput) (domain.Booking, error)
	Cancel(ctx context.Context, ident domain.Identity, id string) error
	ListForUser(ident domain.Identity) []domain.Booking
	ListAll() []domain.Booking
	IsAvailable(vehicleID int64, start, end time.Time) (bool, error)
}

// AuthServicer defines the session operations the handlers depend on.
type AuthServicer interface {
	Register(ctx context.Context, name, email, password, phone string) (domain.Identity, string, error)
	Login(ctx context.Context, email, password string) (domain.Identity, string, error)
	Logout(ctx context.Context, tokenID string) error
	ListUsers() []domain.Identity
}

// Cataloger is the read-only vehicle catalog surface the handlers depend on.
type Cataloger interface {
	All() []domain.Vehicle
	Get(id int64) (domain.Vehicle, error)
}

// Server holds the dependencies shared by every handler method.
type Server struct {
	bookings BookingServicer
	auth     AuthServicer
	catalog  Cataloger
	openapi  []byte
}

// NewServer constructs the Server with all its dependencies.
// openapi is the raw OpenAPI document served at /openapi.yaml; pass nil to
// disable the route.
func NewServer(bookings BookingServicer, auth AuthServicer, catalog Cataloger, openapi []byte) *Server {
	return &Server{bookings: bookings, auth: auth, catalog: catalog, openapi: openapi}
}

// Routes assembles the full route tree. Cross-cutting middleware (request id,
// logging, CORS, body limits, the token authenticator) is applied by main
// around this router; Routes only applies the per-group authorization gates.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	if s.openapi != nil {
		r.Get("/openapi.yaml", s.GetOpenAPI)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/logout", s.Logout)
			r.Get("/me", s.Me)
		})
	})

	r.Route("/vehicles", func(r chi.Router) {
		r.Get("/", s.ListVehicles)
		r.Get("/{id}", s.GetVehicle)
		r.Get("/{id}/availability", s.GetAvailability)
	})

	r.Route("/bookings", func(r chi.Router) {
		// Reading a booking by id is deliberately ungated.
		r.Get("/{id}", s.GetBooking)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", s.CreateBooking)
			r.Get("/", s.ListMyBookings)
			r.Patch("/{id}", s.UpdateBooking)
			r.Delete("/{id}", s.DeleteBooking)
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/bookings", s.AdminListBookings)
		r.Get("/users", s.AdminListUsers)
		r.Get("/export", s.AdminExport)
	})

	return r
}

// GetOpenAPI serves the embedded OpenAPI document.
func (s *Server) GetOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.openapi)
}
