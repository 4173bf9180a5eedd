// Package auth derives the current user from the token held in a session
// store and answers permission questions for the views.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"blogger-web/internal/metrics"
	"blogger-web/internal/model"
	"blogger-web/internal/session"
	"blogger-web/internal/tokencodec"
)

// AdminLogin is the login that grants admin views. The role claim is not
// consulted for this.
const AdminLogin = "admin"

type State int

const (
	Unresolved State = iota
	Anonymous
	Authenticated
)

func (s State) String() string {
	switch s {
	case Anonymous:
		return "anonymous"
	case Authenticated:
		return "authenticated"
	default:
		return "unresolved"
	}
}

// Controller is the session state machine for one browser session.
type Controller struct {
	store session.Store

	mu      sync.RWMutex
	state   State
	user    *model.User
	loading bool
}

func NewController(store session.Store) *Controller {
	return &Controller{
		store:   store,
		state:   Unresolved,
		loading: true,
	}
}

// Restore resolves the state from the stored token. A token that cannot be
// decoded into a user is removed from the store.
func (c *Controller) Restore(ctx context.Context) {
	c.resolve(ctx)

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// Login stores token and recomputes the state from it. The returned error
// only reports a failed store write; an undecodable token leaves the
// session anonymous.
func (c *Controller) Login(ctx context.Context, token string) error {
	if err := c.store.Set(ctx, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	c.resolve(ctx)
	return nil
}

// Logout clears the store. The session is anonymous afterwards even when
// the store could not be cleared.
func (c *Controller) Logout(ctx context.Context) error {
	c.setAnonymous()

	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

func (c *Controller) resolve(ctx context.Context) {
	token, ok := c.store.Get(ctx)
	if !ok {
		c.setAnonymous()
		metrics.RecordSessionRestore("anonymous")
		return
	}

	user, err := decodeUser(token)
	if err != nil {
		slog.Warn("discarding undecodable session token", "error", err, "token", session.TokenPreview(token))
		if clearErr := c.store.Clear(ctx); clearErr != nil {
			slog.Error("failed to clear undecodable session token", "error", clearErr)
		}
		c.setAnonymous()
		metrics.RecordSessionRestore("invalid")
		return
	}

	c.mu.Lock()
	c.state = Authenticated
	c.user = &user
	c.mu.Unlock()
	metrics.RecordSessionRestore("authenticated")
}

func decodeUser(token string) (model.User, error) {
	claims, err := tokencodec.Decode(token)
	if err != nil {
		return model.User{}, err
	}
	return UserFromClaims(claims)
}

func (c *Controller) setAnonymous() {
	c.mu.Lock()
	c.state = Anonymous
	c.user = nil
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// User returns a copy of the current user.
func (c *Controller) User() (model.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil {
		return model.User{}, false
	}
	return *c.user, true
}

func (c *Controller) IsAuthenticated() bool {
	return c.State() == Authenticated
}

func (c *Controller) HasRole(role model.Role) bool {
	user, ok := c.User()
	return ok && user.Role == role
}

func (c *Controller) IsAdmin() bool {
	user, ok := c.User()
	return ok && user.Login == AdminLogin
}

func (c *Controller) CanCreateBlog() bool {
	return c.IsAdmin()
}

func (c *Controller) CanCreatePost() bool {
	return c.IsAdmin()
}

// CanEditComment reports whether the current user wrote the comment.
func (c *Controller) CanEditComment(comment model.Comment) bool {
	user, ok := c.User()
	return ok && comment.OwnedBy(user.ID)
}

// CanDeleteComment allows the comment author and the admin.
func (c *Controller) CanDeleteComment(comment model.Comment) bool {
	return c.IsAdmin() || c.CanEditComment(comment)
}
