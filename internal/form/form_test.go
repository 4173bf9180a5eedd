package form

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogger-web/internal/model"
)

func TestValidateBlog(t *testing.T) {
	valid := model.BlogInput{Name: "  Go notes ", Description: gofakeit.Sentence(8), WebsiteURL: "https://go.dev"}
	require.NoError(t, ValidateBlog(&valid))
	assert.Equal(t, "Go notes", valid.Name)

	invalid := model.BlogInput{Name: strings.Repeat("n", 16), Description: "", WebsiteURL: "not a url"}
	err := ValidateBlog(&invalid)
	fe, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "form.blog_name_length", fe.Get("name"))
	assert.Equal(t, "form.required", fe.Get("description"))
	assert.Equal(t, "form.website_url", fe.Get("websiteUrl"))
}

func TestValidatePost_Bounds(t *testing.T) {
	in := model.PostInput{Title: "A", ShortDescription: "ok!", Content: "12345", BlogID: "b1"}
	fe, ok := AsErrors(ValidatePost(&in))
	require.True(t, ok)
	assert.Equal(t, "form.post_title_length", fe.Get("title"))
	assert.False(t, fe.Has("shortDescription"))
	assert.False(t, fe.Has("content"))
	assert.False(t, fe.Has("blogId"))

	in.Title = "Ab"
	assert.NoError(t, ValidatePost(&in))

	in.Content = strings.Repeat("c", 1001)
	fe, _ = AsErrors(ValidatePost(&in))
	assert.Equal(t, "form.post_content_length", fe.Get("content"))
}

func TestValidatePost_RequiresBlog(t *testing.T) {
	in := model.PostInput{Title: "Lisbon", ShortDescription: "Trams", Content: "Hills and trams.", BlogID: "   "}
	fe, ok := AsErrors(ValidatePost(&in))
	require.True(t, ok)
	assert.Len(t, fe, 1)
	assert.Equal(t, "form.blog_required", fe.Get("blogId"))
}

func TestValidateComment_CountsRunes(t *testing.T) {
	// 20 Cyrillic letters are 40 bytes but 20 characters.
	in := model.CommentInput{Content: strings.Repeat("ж", 20)}
	assert.NoError(t, ValidateComment(&in))

	short := model.CommentInput{Content: "  too short  "}
	fe, ok := AsErrors(ValidateComment(&short))
	require.True(t, ok)
	assert.Equal(t, "form.comment_length", fe.Get("content"))

	empty := model.CommentInput{}
	fe, _ = AsErrors(ValidateComment(&empty))
	assert.Equal(t, "form.comment_required", fe.Get("content"))
}

func TestValidateUser(t *testing.T) {
	in := model.UserInput{
		Login:    "user_" + gofakeit.DigitN(3),
		Email:    gofakeit.Email(),
		Password: gofakeit.Password(true, true, true, false, false, 10),
	}
	require.NoError(t, ValidateUser(&in))

	bad := model.UserInput{Login: "a b", Email: "nope", Password: "123"}
	fe, ok := AsErrors(ValidateUser(&bad))
	require.True(t, ok)
	assert.Equal(t, "form.login_pattern", fe.Get("login"))
	assert.Equal(t, "form.email", fe.Get("email"))
	assert.Equal(t, "form.password_length", fe.Get("password"))
	assert.NotEmpty(t, fe.Error())
}

func TestValidateLogin(t *testing.T) {
	fe, ok := AsErrors(ValidateLogin(&model.LoginInput{}))
	require.True(t, ok)
	assert.True(t, fe.Has("loginOrEmail"))
	assert.True(t, fe.Has("password"))

	assert.NoError(t, ValidateLogin(&model.LoginInput{LoginOrEmail: "alice", Password: "x"}))
}

func TestValidateRole(t *testing.T) {
	role, err := ValidateRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, role)

	_, err = ValidateRole("root")
	assert.Error(t, err)
	fe, ok := AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "form.role", fe.Get("role"))
}
