// Package handler — admin.go implements the administrator-facing routes:
// paged views over the full booking ledger and user directory, and a flat
// export of every booking with content negotiation via ?format=csv.
package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// pagination is the envelope metadata for paged admin lists.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type pagedBookingsResponse struct {
	Data       []bookingResponse `json:"data"`
	Pagination pagination        `json:"pagination"`
}

type pagedUsersResponse struct {
	Data       []identityResponse `json:"data"`
	Pagination pagination         `json:"pagination"`
}

// AdminListBookings handles GET /admin/bookings.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) AdminListBookings(w http.ResponseWriter, r *http.Request) {
	params := paginationFromQuery(r)
	page, total := domain.Paginate(s.bookings.ListAll(), params)

	writeJSON(w, http.StatusOK, pagedBookingsResponse{
		Data:       bookingsToResponse(page),
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// AdminListUsers handles GET /admin/users: the redacted account directory.
func (s *Server) AdminListUsers(w http.ResponseWriter, r *http.Request) {
	params := paginationFromQuery(r)
	page, total := domain.Paginate(s.auth.ListUsers(), params)

	data := make([]identityResponse, len(page))
	for i, ident := range page {
		data[i] = identityToResponse(ident)
	}
	writeJSON(w, http.StatusOK, pagedUsersResponse{
		Data:       data,
		Pagination: pagination{Page: params.Page, Limit: params.Limit, Total: total},
	})
}

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"booking_id", "user_id", "user_name", "user_phone",
	"vehicle_id", "vehicle_name", "start_date", "end_date",
	"status", "amount",
}

// AdminExport handles GET /admin/export.
// It returns the full booking ledger as a flat table.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) AdminExport(w http.ResponseWriter, r *http.Request) {
	bookings := s.bookings.ListAll()

	if r.URL.Query().Get("format") == "csv" {
		writeCSVExport(w, bookings)
		return
	}
	writeJSON(w, http.StatusOK, bookingsToResponse(bookings))
}

// writeCSVExport encodes the ledger as CSV, one row per booking.
func writeCSVExport(w http.ResponseWriter, bookings []domain.Booking) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, b := range bookings {
		//nolint:errcheck
		cw.Write([]string{
			b.ID,
			strconv.FormatInt(b.UserID, 10),
			b.UserName,
			b.UserPhone,
			strconv.FormatInt(b.VehicleID, 10),
			b.VehicleName,
			b.StartDate.Format(dateLayout),
			b.EndDate.Format(dateLayout),
			string(b.Status),
			strconv.FormatFloat(b.Amount, 'f', 2, 64),
		})
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="bookings.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// paginationFromQuery reads optional ?page= and ?limit= query parameters.
// Non-numeric values are treated as absent.
func paginationFromQuery(r *http.Request) domain.PaginationParams {
	var page, limit *int
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		page = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		limit = &v
	}
	return domain.NewPaginationParams(page, limit)
}
