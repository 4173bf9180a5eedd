package gateway

import (
	"context"
	"net/http"

	"blogger-web/internal/model"
)

type AuthAPI struct {
	client *Client
}

func (a *AuthAPI) Register(ctx context.Context, in model.RegistrationInput) error {
	return a.client.do(ctx, call{method: http.MethodPost, path: "/auth/registration", payload: in})
}

func (a *AuthAPI) ConfirmRegistration(ctx context.Context, code string) error {
	return a.client.do(ctx, call{
		method:  http.MethodPost,
		path:    "/auth/registration-confirmation",
		payload: model.ConfirmationInput{Code: code},
	})
}

// Login exchanges credentials for an access token. A successful answer
// without a token is reported as model.ErrNoToken.
func (a *AuthAPI) Login(ctx context.Context, in model.LoginInput) (string, error) {
	var out model.LoginResult
	if err := a.client.do(ctx, call{method: http.MethodPost, path: "/auth/login", payload: in, out: &out}); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", model.ErrNoToken
	}
	return out.AccessToken, nil
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.do(ctx, call{method: http.MethodPost, path: "/auth/logout"})
}

func (a *AuthAPI) Me(ctx context.Context) (model.Me, error) {
	var out model.Me
	err := a.client.do(ctx, call{method: http.MethodGet, path: "/auth/me", out: &out})
	return out, err
}
