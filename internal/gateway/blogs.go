package gateway

import (
	"context"
	"net/http"

	"blogger-web/internal/model"
)

type BlogsAPI struct {
	client *Client
}

func (b *BlogsAPI) List(ctx context.Context, page model.PageRequest) (model.Page[model.Blog], error) {
	var out model.Page[model.Blog]
	err := b.client.do(ctx, call{method: http.MethodGet, path: "/blogs", query: pageQuery(page), out: &out})
	return out, err
}

func (b *BlogsAPI) Get(ctx context.Context, id string) (model.Blog, error) {
	var out model.Blog
	err := b.client.do(ctx, call{method: http.MethodGet, path: "/blogs/" + escape(id), out: &out})
	return out, err
}

func (b *BlogsAPI) Posts(ctx context.Context, blogID string, page model.PageRequest) (model.Page[model.Post], error) {
	var out model.Page[model.Post]
	err := b.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/blogs/" + escape(blogID) + "/posts",
		query:  pageQuery(page),
		out:    &out,
	})
	return out, err
}

func (b *BlogsAPI) Create(ctx context.Context, in model.BlogInput) (model.Blog, error) {
	var out model.Blog
	err := b.client.do(ctx, call{method: http.MethodPost, path: "/blogs", payload: in, out: &out, admin: true})
	return out, err
}

// Update answers 204 on the reference backend, so nothing is decoded.
func (b *BlogsAPI) Update(ctx context.Context, id string, in model.BlogInput) error {
	return b.client.do(ctx, call{method: http.MethodPut, path: "/blogs/" + escape(id), payload: in, admin: true})
}

func (b *BlogsAPI) Delete(ctx context.Context, id string) error {
	return b.client.do(ctx, call{method: http.MethodDelete, path: "/blogs/" + escape(id), admin: true})
}
