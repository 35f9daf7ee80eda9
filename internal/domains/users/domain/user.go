package domain

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrInvalidRole   = errors.New("role must be ADMIN or CASHIER")
	ErrMissingHash   = errors.New("password hash is required")
)

// Role grants access to back-office (ADMIN) or till-only (CASHIER) operations.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleCashier Role = "CASHIER"
)

// HashCost is the bcrypt work factor applied by SetPassword.
var HashCost = bcrypt.DefaultCost

// User is an account allowed to sign in to the till.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	Role         Role
	Active       bool
}

// NewUser builds an active user with a freshly hashed password.
func NewUser(id int64, username, password string, role Role) (*User, error) {
	user := &User{ID: id, Active: true}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetRole normalizes the role; empty means CASHIER.
func (u *User) SetRole(role Role) error {
	normalized := Role(strings.ToUpper(strings.TrimSpace(string(role))))
	switch normalized {
	case "":
		u.Role = RoleCashier
	case RoleAdmin, RoleCashier:
		u.Role = normalized
	default:
		return ErrInvalidRole
	}
	return nil
}

// SetPassword replaces the stored hash. The plain password is never kept.
func (u *User) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u *User) UpdateProfile(fullName string) {
	u.FullName = strings.TrimSpace(fullName)
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.SetRole(u.Role); err != nil {
		return err
	}
	if u.PasswordHash == "" {
		return ErrMissingHash
	}
	u.UpdateProfile(u.FullName)
	return nil
}
