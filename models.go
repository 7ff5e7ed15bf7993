package sessions

import (
	"time"
)

// UserRole is the role carried by an authenticated identity
type UserRole = string

const (
	// RoleMember can browse sessions and manage its own participation
	RoleMember UserRole = "member"
	// RoleAdmin can additionally create, update and delete sessions
	RoleAdmin UserRole = "admin"
)

// TokenClaims is the claim metadata decoded from the issued token. The token
// itself stays an opaque bearer credential; claims are informational only.
type TokenClaims struct {
	Subject   string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Identity is the slim record held after a successful login. It mirrors the
// login response and lives only for the authenticated window.
type Identity struct {
	ID        int64  `json:"id"`
	Token     string `json:"token"`
	Type      string `json:"type"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Admin     bool   `json:"admin"`

	Claims *TokenClaims `json:"-"`
}

// Role maps the wire-level admin flag onto the explicit role tags consumed by
// the authorization gate.
func (i *Identity) Role() UserRole {
	if i != nil && i.Admin {
		return RoleAdmin
	}
	return RoleMember
}

// LoginRequest is the login payload. The secret is sent once and never
// retained after the call completes.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

// Session is the server-owned scheduling resource. The client holds
// read-through copies only; every view load fetches a fresh one.
type Session struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Date        time.Time  `json:"date"`
	TeacherID   int64      `json:"teacher_id"`
	Users       []int64    `json:"users"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// HasMember reports whether the given user id is in the membership set
func (s *Session) HasMember(userID int64) bool {
	if s == nil {
		return false
	}
	for _, id := range s.Users {
		if id == userID {
			return true
		}
	}
	return false
}

// SessionDraft is the create/update payload for a session
type SessionDraft struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	TeacherID   int64     `json:"teacher_id"`
}

// Teacher is immutable reference data from the client's perspective
type Teacher struct {
	ID        int64      `json:"id"`
	LastName  string     `json:"lastName"`
	FirstName string     `json:"firstName"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Profile is the full user record fetched on demand, distinct from the slim
// Identity held after login.
type Profile struct {
	ID        int64      `json:"id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Admin     bool       `json:"admin"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
