package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListVehicles handles GET /vehicles: the full catalog.
func (s *Server) ListVehicles(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.All())
}

// GetVehicle handles GET /vehicles/{id}.
func (s *Server) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		requestError(w, "vehicle id must be an integer")
		return
	}

	vehicle, err := s.catalog.Get(id)
	if err != nil {
		respondError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// GetAvailability handles GET /vehicles/{id}/availability?start_date=&end_date=.
// The answer reflects the ledger at the moment of the call; it is advisory
// only — creation re-checks under the engine lock.
func (s *Server) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		requestError(w, "vehicle id must be an integer")
		return
	}

	start, err := parseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		requestError(w, "start_date must be a YYYY-MM-DD date")
		return
	}
	end, err := parseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		requestError(w, "end_date must be a YYYY-MM-DD date")
		return
	}

	available, err := s.bookings.IsAvailable(id, start, end)
	if err != nil {
		respondError(w, err, "vehicle not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}
