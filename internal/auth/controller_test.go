package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogger-web/internal/model"
	"blogger-web/internal/session"
)

type spyStore struct {
	token    string
	present  bool
	gets     int
	clears   int
	setErr   error
	clearErr error
}

func (s *spyStore) Get(context.Context) (string, bool) {
	s.gets++
	return s.token, s.present
}

func (s *spyStore) Set(_ context.Context, token string) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.token, s.present = token, true
	return nil
}

func (s *spyStore) Clear(context.Context) error {
	s.clears++
	if s.clearErr != nil {
		return s.clearErr
	}
	s.token, s.present = "", false
	return nil
}

func makeToken(payload string) string {
	return "header." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".sig"
}

func TestController_InitialState(t *testing.T) {
	c := NewController(&spyStore{})

	assert.Equal(t, Unresolved, c.State())
	assert.True(t, c.Loading())
	assert.False(t, c.IsAuthenticated())
}

func TestController_RestoreAdminToken(t *testing.T) {
	store := &spyStore{}
	store.token, store.present = makeToken(`{"userId":"u1","userLogin":"admin","userRole":"ADMIN"}`), true
	c := NewController(store)

	c.Restore(context.Background())

	require.Equal(t, Authenticated, c.State())
	assert.False(t, c.Loading())

	user, ok := c.User()
	require.True(t, ok)
	assert.Equal(t, model.User{ID: "u1", Login: "admin", Role: model.RoleAdmin}, user)
	assert.True(t, c.IsAdmin())
	assert.True(t, c.CanCreateBlog())
	assert.True(t, c.CanCreatePost())
	assert.True(t, c.HasRole(model.RoleAdmin))
	assert.False(t, c.HasRole(model.RoleUser))
	assert.Zero(t, store.clears)
}

func TestController_RestoreNotJSONClearsStore(t *testing.T) {
	store := &spyStore{}
	store.token, store.present = makeToken("not-json"), true
	c := NewController(store)

	c.Restore(context.Background())

	assert.Equal(t, Anonymous, c.State())
	assert.False(t, c.Loading())
	assert.Equal(t, 1, store.clears)
	assert.False(t, store.present)
}

func TestController_RestoreMissingRequiredClaims(t *testing.T) {
	store := &spyStore{}
	store.token, store.present = makeToken(`{"userId":"u1","userRole":"ADMIN"}`), true
	c := NewController(store)

	c.Restore(context.Background())

	assert.Equal(t, Anonymous, c.State())
	assert.Equal(t, 1, store.clears)
}

func TestController_RestoreWithoutToken(t *testing.T) {
	store := &spyStore{}
	c := NewController(store)

	c.Restore(context.Background())

	assert.Equal(t, Anonymous, c.State())
	assert.False(t, c.Loading())
	assert.Equal(t, 1, store.gets)
	assert.Zero(t, store.clears)
}

func TestController_RestoreClearFailureStillAnonymous(t *testing.T) {
	store := &spyStore{clearErr: errors.New("storage offline")}
	store.token, store.present = "garbage", true
	c := NewController(store)

	c.Restore(context.Background())

	assert.Equal(t, Anonymous, c.State())
	assert.False(t, c.Loading())
}

func TestController_IsAdminIgnoresRoleClaim(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		admin   bool
		role    model.Role
	}{
		{"admin login user role", `{"userId":"1","userLogin":"admin","userRole":"USER"}`, true, model.RoleUser},
		{"admin login no role", `{"userId":"1","userLogin":"admin"}`, true, model.RoleUser},
		{"other login admin role", `{"userId":"2","userLogin":"alice","userRole":"ADMIN"}`, false, model.RoleAdmin},
		{"other login lower role", `{"userId":"3","userLogin":"bob","userRole":"admin"}`, false, model.RoleUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewController(session.Scoped(session.NewMemoryBackend(0), "s"))
			require.NoError(t, c.Login(context.Background(), makeToken(tc.payload)))

			assert.True(t, c.IsAuthenticated())
			assert.Equal(t, tc.admin, c.IsAdmin())
			assert.Equal(t, tc.admin, c.CanCreateBlog())
			assert.True(t, c.HasRole(tc.role))
		})
	}
}

func TestController_LoginAndLogout(t *testing.T) {
	ctx := context.Background()
	store := session.Scoped(session.NewMemoryBackend(0), "s")
	c := NewController(store)
	c.Restore(ctx)
	require.Equal(t, Anonymous, c.State())

	token := makeToken(`{"userId":"u7","userLogin":"writer","userEmail":"w@example.com"}`)
	require.NoError(t, c.Login(ctx, token))

	user, ok := c.User()
	require.True(t, ok)
	assert.Equal(t, "w@example.com", user.Email)
	assert.Equal(t, model.RoleUser, user.Role)
	stored, ok := store.Get(ctx)
	assert.True(t, ok)
	assert.Equal(t, token, stored)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, Anonymous, c.State())
	_, ok = store.Get(ctx)
	assert.False(t, ok)

	require.NoError(t, c.Logout(ctx))
	assert.Equal(t, Anonymous, c.State())
}

func TestController_LoginWithBadTokenClearsStore(t *testing.T) {
	ctx := context.Background()
	store := session.Scoped(session.NewMemoryBackend(0), "s")
	c := NewController(store)

	require.NoError(t, c.Login(ctx, "no-dots-here"))

	assert.Equal(t, Anonymous, c.State())
	_, ok := store.Get(ctx)
	assert.False(t, ok)
}

func TestController_LoginStoreFailure(t *testing.T) {
	c := NewController(&spyStore{setErr: errors.New("disk full")})

	err := c.Login(context.Background(), makeToken(`{"userId":"1","userLogin":"x"}`))
	assert.Error(t, err)
	assert.NotEqual(t, Authenticated, c.State())
}

func TestController_CommentPermissions(t *testing.T) {
	ctx := context.Background()
	mine := model.Comment{ID: "c1", CommentatorInfo: &model.CommentatorInfo{UserID: "u1", UserLogin: "alice"}}
	theirs := model.Comment{ID: "c2", CommentatorInfo: &model.CommentatorInfo{UserID: "u2", UserLogin: "bob"}}

	user := NewController(session.Scoped(session.NewMemoryBackend(0), "a"))
	require.NoError(t, user.Login(ctx, makeToken(`{"userId":"u1","userLogin":"alice"}`)))
	assert.True(t, user.CanEditComment(mine))
	assert.True(t, user.CanDeleteComment(mine))
	assert.False(t, user.CanEditComment(theirs))
	assert.False(t, user.CanDeleteComment(theirs))

	admin := NewController(session.Scoped(session.NewMemoryBackend(0), "b"))
	require.NoError(t, admin.Login(ctx, makeToken(`{"userId":"u0","userLogin":"admin"}`)))
	assert.False(t, admin.CanEditComment(theirs))
	assert.True(t, admin.CanDeleteComment(theirs))

	anonymous := NewController(session.Scoped(session.NewMemoryBackend(0), "c"))
	anonymous.Restore(ctx)
	assert.False(t, anonymous.CanDeleteComment(mine))
}

func TestUserFromClaims_NonStringID(t *testing.T) {
	_, err := UserFromClaims(map[string]any{"userId": 12.0, "userLogin": "x"})
	assert.Error(t, err)
}
