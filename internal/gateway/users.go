package gateway

import (
	"context"
	"net/http"

	"blogger-web/internal/model"
)

type UsersAPI struct {
	client *Client
}

func (u *UsersAPI) List(ctx context.Context, page model.PageRequest) (model.Page[model.Account], error) {
	var out model.Page[model.Account]
	err := u.client.do(ctx, call{method: http.MethodGet, path: "/users", query: pageQuery(page), out: &out})
	return out, err
}

func (u *UsersAPI) Create(ctx context.Context, in model.UserInput) (model.Account, error) {
	var out model.Account
	err := u.client.do(ctx, call{method: http.MethodPost, path: "/users", payload: in, out: &out, admin: true})
	return out, err
}

func (u *UsersAPI) UpdateRole(ctx context.Context, id string, role model.Role) error {
	return u.client.do(ctx, call{
		method:  http.MethodPut,
		path:    "/users/" + escape(id) + "/role",
		payload: model.RoleInput{Role: role},
		admin:   true,
	})
}

func (u *UsersAPI) Delete(ctx context.Context, id string) error {
	return u.client.do(ctx, call{method: http.MethodDelete, path: "/users/" + escape(id), admin: true})
}
