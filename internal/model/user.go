package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps anything but the literal ADMIN marker to RoleUser.
func ParseRole(raw string) Role {
	if raw == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleUser
}

// User is the identity derived from a bearer token. It is never persisted.
type User struct {
	ID    string `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Account is a user as the backend lists and returns it.
type Account struct {
	ID        string    `json:"id"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	Role      Role      `json:"role,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

type Me struct {
	UserID string `json:"userId"`
	Login  string `json:"login"`
	Email  string `json:"email"`
}

type UserInput struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RoleInput struct {
	Role Role `json:"role"`
}

type LoginInput struct {
	LoginOrEmail string `json:"loginOrEmail"`
	Password     string `json:"password"`
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
}

type RegistrationInput = UserInput

type ConfirmationInput struct {
	Code string `json:"code"`
}
