package mapper

import (
	"time"

	userdomain "github.com/Apurer/retail-pos/internal/domains/users/domain"
)

// UserPayload is the request body for creating or replacing a user.
// Password is required on create and optional on update.
type UserPayload struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"omitempty,min=4,max=72"`
	FullName string `json:"fullName" validate:"max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN CASHIER"`
	Active   *bool  `json:"active"`
}

// User represents the transport-level user. The password hash never leaves the server.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type LoginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// ToDomainUser converts a create payload, hashing the password.
func ToDomainUser(payload UserPayload) (*userdomain.User, error) {
	user, err := userdomain.NewUser(0, payload.Username, payload.Password, userdomain.Role(payload.Role))
	if err != nil {
		return nil, err
	}
	user.UpdateProfile(payload.FullName)
	if payload.Active != nil {
		user.Active = *payload.Active
	}
	return user, nil
}

// ToDomainUserUpdate converts an update payload. An empty password leaves PasswordHash empty so the stored one is kept.
func ToDomainUserUpdate(payload UserPayload) (*userdomain.User, error) {
	user := &userdomain.User{Active: true}
	if err := user.SetRole(userdomain.Role(payload.Role)); err != nil {
		return nil, err
	}
	if payload.Password != "" {
		if err := user.SetPassword(payload.Password); err != nil {
			return nil, err
		}
	}
	user.UpdateProfile(payload.FullName)
	if payload.Active != nil {
		user.Active = *payload.Active
	}
	return user, nil
}

// FromDomainUser converts a domain user into a transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     string(user.Role),
		Active:   user.Active,
	}
}

// FromDomainUsers converts a slice of domain users to transport representation.
func FromDomainUsers(users []*userdomain.User) []User {
	result := make([]User, 0, len(users))
	for _, user := range users {
		result = append(result, FromDomainUser(user))
	}
	return result
}

func FromDomainSession(session *userdomain.Session, user *userdomain.User) LoginResponse {
	return LoginResponse{Token: session.Token, ExpiresAt: session.ExpiresAt, User: FromDomainUser(user)}
}
