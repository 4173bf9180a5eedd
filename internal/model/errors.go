package model

import "errors"

var (
	// Session related errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNoToken      = errors.New("login response carried no access token")

	// Backend related errors
	ErrNotFound = errors.New("not found")

	// Generic errors
	ErrInvalidInput = errors.New("invalid input")
)
