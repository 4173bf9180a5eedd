package gateway

import (
	"context"
	"net/http"

	"blogger-web/internal/model"
)

type CommentsAPI struct {
	client *Client
}

func (c *CommentsAPI) Get(ctx context.Context, id string) (model.Comment, error) {
	var out model.Comment
	err := c.client.do(ctx, call{method: http.MethodGet, path: "/comments/" + escape(id), out: &out})
	return out, err
}

func (c *CommentsAPI) Update(ctx context.Context, id string, in model.CommentInput) error {
	return c.client.do(ctx, call{method: http.MethodPut, path: "/comments/" + escape(id), payload: in})
}

func (c *CommentsAPI) Delete(ctx context.Context, id string) error {
	return c.client.do(ctx, call{method: http.MethodDelete, path: "/comments/" + escape(id)})
}
