package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// UserRole represents the authorization tier of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
	RoleUser    UserRole = "user"
)

// User represents a registered user with their derived permission set.
type User struct {
	ID           string        `json:"id" db:"id"`
	Email        string        `json:"email" db:"email"`
	PasswordHash string        `json:"-" db:"password_hash"`
	FirstName    string        `json:"first_name" db:"first_name"`
	LastName     string        `json:"last_name" db:"last_name"`
	Role         UserRole      `json:"role" db:"role"`
	Permissions  PermissionSet `json:"permissions"`
	Birthday     string        `json:"birthday,omitempty" db:"birthday"` // YYYY-MM-DD
	Phone        string        `json:"phone,omitempty" db:"phone"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	LastLogin    *time.Time    `json:"last_login,omitempty" db:"last_login"`
}

// UserCreateRequest represents the data needed to create a new user profile.
type UserCreateRequest struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Birthday  string   `json:"birthday"` // YYYY-MM-DD, converted from form input
	Phone     string   `json:"phone"`
	Role      UserRole `json:"role"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
var nameRegex = regexp.MustCompile(`^[a-zA-Z\s\-']+$`)

// Validate validates user creation data.
func (req *UserCreateRequest) Validate() error {
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := ValidatePassword(req.Password); err != nil {
		return err
	}
	if err := validateName(req.FirstName, req.LastName); err != nil {
		return err
	}
	return req.Role.Validate()
}

// Validate rejects roles outside the four enumerated tiers.
func (r UserRole) Validate() error {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff, RoleUser:
		return nil
	default:
		return errors.New("invalid user role")
	}
}

// ValidateEmail validates an email address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}
	return nil
}

// ValidatePassword validates a password.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return errors.New("password must be less than 128 characters")
	}
	return nil
}

func validateName(firstName, lastName string) error {
	if firstName == "" {
		return errors.New("first name is required")
	}
	if lastName == "" {
		return errors.New("last name is required")
	}
	if len(firstName) > 100 || len(lastName) > 100 {
		return errors.New("names must be less than 100 characters")
	}
	if !nameRegex.MatchString(firstName) {
		return errors.New("first name contains invalid characters")
	}
	if !nameRegex.MatchString(lastName) {
		return errors.New("last name contains invalid characters")
	}
	return nil
}

// FullName returns the user's full name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// HasPermission reports whether the user's role grants a permission.
// A nil user (nobody signed in) has no permissions at all.
func (u *User) HasPermission(p Permission) bool {
	if u == nil {
		return false
	}
	return u.Permissions.Has(p)
}

// Session represents a server-side user session.
type Session struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
