package gateway

import (
	"context"
	"net/http"

	"blogger-web/internal/model"
)

type PostsAPI struct {
	client *Client
}

func (p *PostsAPI) List(ctx context.Context, page model.PageRequest) (model.Page[model.Post], error) {
	var out model.Page[model.Post]
	err := p.client.do(ctx, call{method: http.MethodGet, path: "/posts", query: pageQuery(page), out: &out})
	return out, err
}

func (p *PostsAPI) Get(ctx context.Context, id string) (model.Post, error) {
	var out model.Post
	err := p.client.do(ctx, call{method: http.MethodGet, path: "/posts/" + escape(id), out: &out})
	return out, err
}

// Create adds a post to blogID through the blog's nested endpoint.
func (p *PostsAPI) Create(ctx context.Context, blogID string, in model.PostInput) (model.Post, error) {
	in.BlogID = blogID
	var out model.Post
	err := p.client.do(ctx, call{
		method:  http.MethodPost,
		path:    "/blogs/" + escape(blogID) + "/posts",
		payload: in,
		out:     &out,
		admin:   true,
	})
	return out, err
}

// CreateStandalone adds a post through the top-level collection; the blog
// is named by in.BlogID.
func (p *PostsAPI) CreateStandalone(ctx context.Context, in model.PostInput) (model.Post, error) {
	var out model.Post
	err := p.client.do(ctx, call{method: http.MethodPost, path: "/posts", payload: in, out: &out, admin: true})
	return out, err
}

func (p *PostsAPI) Update(ctx context.Context, id string, in model.PostInput) error {
	return p.client.do(ctx, call{method: http.MethodPut, path: "/posts/" + escape(id), payload: in, admin: true})
}

func (p *PostsAPI) Delete(ctx context.Context, id string) error {
	return p.client.do(ctx, call{method: http.MethodDelete, path: "/posts/" + escape(id), admin: true})
}

func (p *PostsAPI) Comments(ctx context.Context, postID string, page model.PageRequest) (model.Page[model.Comment], error) {
	var out model.Page[model.Comment]
	err := p.client.do(ctx, call{
		method: http.MethodGet,
		path:   "/posts/" + escape(postID) + "/comments",
		query:  pageQuery(page),
		out:    &out,
	})
	return out, err
}

// AddComment requires a session token; it goes through the bearer transport.
func (p *PostsAPI) AddComment(ctx context.Context, postID string, in model.CommentInput) (model.Comment, error) {
	var out model.Comment
	err := p.client.do(ctx, call{
		method:  http.MethodPost,
		path:    "/posts/" + escape(postID) + "/comments",
		payload: in,
		out:     &out,
	})
	return out, err
}
