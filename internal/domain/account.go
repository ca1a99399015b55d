// Package domain contains the core data types for the Lux Rentals booking API.
// This package has zero external dependencies and is imported by every other
// internal package (store, service, handler).
package domain

import "time"

// Role is the authorization level of an account.
type Role string

const (
	// RoleStandard is the role assigned to every account created through
	// registration. Standard accounts may only manage their own bookings.
	RoleStandard Role = "standard"

	// RoleAdmin may manage any booking and read the full ledger and directory.
	RoleAdmin Role = "admin"
)

// Account is a registered user of the rental service.
// The struct is the snapshot representation written to the user directory
// blob, so it carries the password hash; it must never be serialized into an
// API response directly — use Identity for that.
type Account struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"` // bcrypt
	Role          Role      `json:"role"`
	JoinDate      time.Time `json:"join_date"`
	BookingsCount int       `json:"bookings_count"`
	Phone         string    `json:"phone,omitempty"`
}

// Identity is the redacted view of an Account: everything but the credential.
// It is what the session store holds and what API responses expose.
type Identity struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          Role      `json:"role"`
	JoinDate      time.Time `json:"join_date"`
	BookingsCount int       `json:"bookings_count"`
	Phone         string    `json:"phone,omitempty"`
}

// Identity returns the redacted view of the account.
func (a Account) Identity() Identity {
	return Identity{
		ID:            a.ID,
		Name:          a.Name,
		Email:         a.Email,
		Role:          a.Role,
		JoinDate:      a.JoinDate,
		BookingsCount: a.BookingsCount,
		Phone:         a.Phone,
	}
}

// IsAdmin reports whether the identity carries the administrator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsSelfOrAdmin is the authorization predicate used by every mutating booking
// operation: the identity must be present and either own the resource or be
// an administrator.
func (i Identity) IsSelfOrAdmin(ownerID int64) bool {
	if i.ID == 0 {
		return false
	}
	return i.ID == ownerID || i.IsAdmin()
}
