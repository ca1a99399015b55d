package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/mgirard/lux-rentals/api/internal/auth"
	"github.com/mgirard/lux-rentals/api/internal/domain"
)

// dateLayout is the wire format for all calendar dates.
const dateLayout = "2006-01-02"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is returned by register and login: the redacted identity
// plus the bearer token for subsequent requests.
type sessionResponse struct {
	Token string           `json:"token"`
	User  identityResponse `json:"user"`
}

type identityResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	JoinDate      string `json:"join_date"`
	BookingsCount int    `json:"bookings_count"`
	Phone         string `json:"phone,omitempty"`
}

func identityToResponse(i domain.Identity) identityResponse {
	return identityResponse{
		ID:            i.ID,
		Name:          i.Name,
		Email:         i.Email,
		Role:          string(i.Role),
		JoinDate:      i.JoinDate.Format(dateLayout),
		BookingsCount: i.BookingsCount,
		Phone:         i.Phone,
	}
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	ident, token, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		respondError(w, err, "account not found")
		return
	}

	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: identityToResponse(ident)})
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestError(w, "invalid request body")
		return
	}

	ident, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err, "account not found")
		return
	}

	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: identityToResponse(ident)})
}

// Logout handles POST /auth/logout. The session record is deleted, revoking
// the token even though it has not yet expired.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID, ok := auth.TokenIDFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "sign in to perform this action")
		return
	}

	if err := s.auth.Logout(r.Context(), tokenID); err != nil {
		respondError(w, err, "session not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me: the identity of the current session.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated", "sign in to perform this action")
		return
	}
	writeJSON(w, http.StatusOK, identityToResponse(ident))
}

// parseDate parses a wire-format calendar date into a UTC midnight instant.
func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
