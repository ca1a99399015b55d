package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgirard/lux-rentals/api/internal/auth"
	"github.com/mgirard/lux-rentals/api/internal/domain"
	"github.com/mgirard/lux-rentals/api/internal/service"
)

type createBookingRequest struct {
	VehicleID int64   `json:"vehicle_id"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status,omitempty"`
	Amount    float64 `json:"amount"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// updateBookingRequest carries the partial update fields; absent fields stay
// unchanged.
type updateBookingRequest struct {
	StartDate *string  `json:"start_date,omitempty"`
	EndDate   *string  `json:"end_date,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
}

type bookingResponse struct {
	ID          string  `json:"id"`
	UserID      int64   `json:"user_id"`
	UserName    string  `json:"user_name"`
	UserPhone   string  `json:"user_phone,omitempty"`
	VehicleID   int64   `json:"vehicle_id"`
	VehicleName string  `json:"vehicle_name"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Status      string  `json:"status"`
	Amount      float64 `json:"amount"`
	ImageURL    string  `json:"image_url,omitempty"`
}

func bookingToResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		UserID:      b.UserID,
		UserName:    b.UserName,
		UserPhone:   b.UserPhone,
		VehicleID:   b.VehicleID,
		VehicleName: b.VehicleName,
		StartDate:   b.StartDate.Format(dateLayout),
		EndDate:     b.EndDate.Format(dateLayout),
		Status:      string(b.Status),
		Amount:      b.Amount,
		ImageURL:    b.ImageURL,
	}
}

func bookingsToResponse(bs []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, len(bs))
	for i, b := range bs {
		out[i] = bookingToResponse(b)
	}
	return out
}

// CreateBooking handles POST /bookings.
func (s *Server) CreateBooking(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	in, err := requestToCreateInput(req)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	booking, err := s.bookings.Create(r.Context(), ident, in)
	if err != nil {
		respondError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusCreated, bookingToResponse(booking))
}

// ListMyBookings handles GET /bookings: the caller's own bookings.
func (s *Server) ListMyBookings(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())
	writeJSON(w, http.StatusOK, bookingsToResponse(s.bookings.ListForUser(ident)))
}

// GetBooking handles GET /bookings/{id}.
// No authorization check: the record is readable by anyone holding the id.
func (s *Server) GetBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := s.bookings.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(booking))
}

// UpdateBooking handles PATCH /bookings/{id}.
func (s *Server) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	var req updateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	in, err := requestToUpdateInput(req)
	if err != nil {
		requestError(w, err.Error())
		return
	}

	booking, err := s.bookings.Update(r.Context(), ident, chi.URLParam(r, "id"), in)
	if err != nil {
		respondError(w, err, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, bookingToResponse(booking))
}

// DeleteBooking handles DELETE /bookings/{id} — cancellation, which removes
// the record entirely.
func (s *Server) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	ident, _ := auth.IdentityFrom(r.Context())

	if err := s.bookings.Cancel(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		respondError(w, err, "booking not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// requestToCreateInput converts the wire request into a service input,
// validating shape (dates parseable, status known) but not business rules —
// those belong to the engine.
func requestToCreateInput(req createBookingRequest) (service.CreateBookingInput, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return service.CreateBookingInput{}, errDateField("start_date")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return service.CreateBookingInput{}, errDateField("end_date")
	}

	in := service.CreateBookingInput{
		VehicleID: req.VehicleID,
		StartDate: start,
		EndDate:   end,
		Amount:    req.Amount,
		ImageURL:  req.ImageURL,
	}
	if req.Status != "" {
		status, err := domain.ParseBookingStatus(req.Status)
		if err != nil {
			return service.CreateBookingInput{}, errStatusField(req.Status)
		}
		in.Status = status
	}
	return in, nil
}

func requestToUpdateInput(req updateBookingRequest) (service.UpdateBookingInput, error) {
	var in service.UpdateBookingInput

	if req.StartDate != nil {
		start, err := parseDate(*req.StartDate)
		if err != nil {
			return service.UpdateBookingInput{}, errDateField("start_date")
		}
		in.StartDate = &start
	}
	if req.EndDate != nil {
		end, err := parseDate(*req.EndDate)
		if err != nil {
			return service.UpdateBookingInput{}, errDateField("end_date")
		}
		in.EndDate = &end
	}
	if req.Status != nil {
		status, err := domain.ParseBookingStatus(*req.Status)
		if err != nil {
			return service.UpdateBookingInput{}, errStatusField(*req.Status)
		}
		in.Status = &status
	}
	in.Amount = req.Amount

	return in, nil
}

type fieldError string

func (e fieldError) Error() string { return string(e) }

func errDateField(name string) error {
	return fieldError(name + " must be a YYYY-MM-DD date")
}

func errStatusField(got string) error {
	return fieldError("status must be one of upcoming, active, completed; got " + got)
}
