package auth

import (
	"blogger-web/internal/model"
	"blogger-web/internal/tokencodec"
)

const (
	claimUserID    = "userId"
	claimUserLogin = "userLogin"
	claimUserEmail = "userEmail"
	claimUserRole  = "userRole"
)

// UserFromClaims builds the session user out of decoded claims. userId and
// userLogin must be JSON strings; userEmail and userRole are optional.
func UserFromClaims(claims tokencodec.Claims) (model.User, error) {
	id, ok := claims.String(claimUserID)
	if !ok {
		return model.User{}, &tokencodec.DecodeError{Reason: "claim userId missing or not a string"}
	}

	login, ok := claims.String(claimUserLogin)
	if !ok {
		return model.User{}, &tokencodec.DecodeError{Reason: "claim userLogin missing or not a string"}
	}

	email, _ := claims.String(claimUserEmail)
	role, _ := claims.String(claimUserRole)

	return model.User{
		ID:    id,
		Login: login,
		Email: email,
		Role:  model.ParseRole(role),
	}, nil
}
