package view

import "blogger-web/internal/model"

type BlogList struct {
	Blogs []model.Blog
	Pager Pager
}

type PostList struct {
	Posts []model.Post
	Pager Pager
}

type BlogDetail struct {
	Blog  model.Blog
	Posts []model.Post
	Pager Pager
}

// PostDetail is a post with one page of its comments. Draft is the new
// comment being written; EditID and Edit describe a comment edit that
// failed validation.
type PostDetail struct {
	Post     model.Post
	Comments []model.Comment
	Pager    Pager
	Draft    model.CommentInput
	EditID   string
	Edit     model.CommentInput
}

type Info struct {
	Status string
}

type LoginForm struct {
	Input model.LoginInput
	Next  string
}

// UserForm serves both self registration and admin user creation.
type UserForm struct {
	Action string
	Title  string
	Input  model.UserInput
}

type Confirmation struct {
	Message string
}

type Account struct {
	Me model.Me
}

// BlogForm creates a blog when ID is empty and edits it otherwise.
type BlogForm struct {
	ID    string
	Input model.BlogInput
}

// PostForm serves three forms: edit (ID set), create under a blog (BlogID
// set) and standalone create, which offers Blogs to choose from.
type PostForm struct {
	ID     string
	BlogID string
	Blogs  []model.Blog
	Input  model.PostInput
}

type UserList struct {
	Users []model.Account
	Pager Pager
	Roles []model.Role
}

type AuditList struct {
	Entries []model.AuditEntry
	Query   model.AuditQuery
	Pager   Pager
}

type ErrorPage struct {
	Status  int
	Message string
}
