package handler_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"blogger-web/internal/model"
)

const (
	adminBasic = "Basic YWRtaW46cXdlcnR5"
)

type fakeUser struct {
	account  model.Account
	password string
	token    string
}

type recordedCall struct {
	Method string
	Path   string
	Auth   string
}

// fakeBackend is an in-memory blog REST backend.
type fakeBackend struct {
	mu          sync.Mutex
	seq         int
	blogs       []model.Blog
	posts       []model.Post
	comments    []model.Comment
	commentPost map[string]string
	users       []*fakeUser
	calls       []recordedCall
	down        bool
}

func newFakeBackend() *fakeBackend {
	b := &fakeBackend{seq: 100, commentPost: map[string]string{}}
	b.users = []*fakeUser{
		b.newUser("u0", "admin", "admin@example.com", "qwerty", model.RoleAdmin),
		b.newUser("u1", "alice", "alice@example.com", "secret1", model.RoleUser),
		b.newUser("u2", "bob", "bob@example.com", "secret2", model.RoleUser),
	}
	return b
}

func (b *fakeBackend) newUser(id, login, email, password string, role model.Role) *fakeUser {
	return &fakeUser{
		account:  model.Account{ID: id, Login: login, Email: email, Role: role, CreatedAt: time.Now()},
		password: password,
		token:    tokenFor(map[string]any{"userId": id, "userLogin": login, "userEmail": email, "userRole": string(role)}),
	}
}

func tokenFor(claims map[string]any) string {
	payload, _ := json.Marshal(claims)
	return "eyJhbGciOiJIUzI1NiJ9." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

func (b *fakeBackend) nextID(prefix string) string {
	b.seq++
	return prefix + strconv.Itoa(b.seq)
}

func (b *fakeBackend) callsTo(method, path string) []recordedCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []recordedCall
	for _, c := range b.calls {
		if c.Method == method && c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (b *fakeBackend) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			b.mu.Lock()
			b.calls = append(b.calls, recordedCall{Method: req.Method, Path: req.URL.Path, Auth: req.Header.Get("Authorization")})
			down := b.down
			b.mu.Unlock()
			if down {
				http.Error(w, "maintenance", http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Post("/auth/login", b.login)
	r.Post("/auth/logout", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Get("/auth/me", b.me)
	r.Post("/auth/registration", b.register)
	r.Post("/auth/registration-confirmation", b.confirm)

	r.Get("/blogs", b.listBlogs)
	r.Post("/blogs", b.admin(b.createBlog))
	r.Get("/blogs/{id}", b.getBlog)
	r.Put("/blogs/{id}", b.admin(b.updateBlog))
	r.Delete("/blogs/{id}", b.admin(b.deleteBlog))
	r.Get("/blogs/{id}/posts", b.blogPosts)
	r.Post("/blogs/{id}/posts", b.admin(b.createPost))

	r.Get("/posts", b.listPosts)
	r.Post("/posts", b.admin(b.createPost))
	r.Get("/posts/{id}", b.getPost)
	r.Put("/posts/{id}", b.admin(b.updatePost))
	r.Delete("/posts/{id}", b.admin(b.deletePost))
	r.Get("/posts/{id}/comments", b.postComments)
	r.Post("/posts/{id}/comments", b.addComment)

	r.Get("/comments/{id}", b.getComment)
	r.Put("/comments/{id}", b.updateComment)
	r.Delete("/comments/{id}", b.deleteComment)

	r.Get("/users", b.listUsers)
	r.Post("/users", b.admin(b.createUser))
	r.Put("/users/{id}/role", b.admin(b.updateRole))
	r.Delete("/users/{id}", b.admin(b.deleteUser))
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func fieldError(w http.ResponseWriter, field, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"errorsMessages": []map[string]string{{"field": field, "message": message}},
	})
}

func pageOf[T any](req *http.Request, items []T) model.Page[T] {
	number, _ := strconv.Atoi(req.URL.Query().Get("pageNumber"))
	size, _ := strconv.Atoi(req.URL.Query().Get("pageSize"))
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 10
	}
	start := (number - 1) * size
	if start > len(items) {
		start = len(items)
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return model.Page[T]{
		Items:      append([]T{}, items[start:end]...),
		TotalCount: len(items),
		Page:       number,
		PageSize:   size,
		PagesCount: (len(items) + size - 1) / size,
	}
}

func (b *fakeBackend) admin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != adminBasic {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		next(w, r)
	}
}

// bearer resolves the calling user; callers hold b.mu.
func (b *fakeBackend) bearer(r *http.Request) *fakeUser {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	for _, u := range b.users {
		if u.token == token {
			return u
		}
	}
	return nil
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var in model.LoginInput
	_ = json.NewDecoder(r.Body).Decode(&in)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if (u.account.Login == in.LoginOrEmail || u.account.Email == in.LoginOrEmail) && u.password == in.Password {
			writeJSON(w, http.StatusOK, model.LoginResult{AccessToken: u.token})
			return
		}
	}
	w.WriteHeader(http.StatusUnauthorized)
}

func (b *fakeBackend) me(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.bearer(r)
	if u == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, model.Me{UserID: u.account.ID, Login: u.account.Login, Email: u.account.Email})
}

func (b *fakeBackend) register(w http.ResponseWriter, r *http.Request) {
	var in model.UserInput
	_ = json.NewDecoder(r.Body).Decode(&in)

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.users {
		if u.account.Login == in.Login {
			fieldError(w, "login", "login already taken")
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) confirm(w http.ResponseWriter, r *http.Request) {
	var in model.ConfirmationInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.Code != "good-code" {
		fieldError(w, "code", "code is invalid")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) listBlogs(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf(r, b.blogs))
}

func (b *fakeBackend) findBlog(id string) int {
	for i, blog := range b.blogs {
		if blog.ID == id {
			return i
		}
	}
	return -1
}

func (b *fakeBackend) getBlog(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findBlog(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b.blogs[i])
}

func (b *fakeBackend) createBlog(w http.ResponseWriter, r *http.Request) {
	var in model.BlogInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.Name == "taken" {
		fieldError(w, "name", "name already used")
		return
	}
	blog := model.Blog{ID: b.nextID("b"), Name: in.Name, Description: in.Description, WebsiteURL: in.WebsiteURL, CreatedAt: time.Now()}
	b.blogs = append(b.blogs, blog)
	writeJSON(w, http.StatusCreated, blog)
}

func (b *fakeBackend) updateBlog(w http.ResponseWriter, r *http.Request) {
	i := b.findBlog(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var in model.BlogInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	b.blogs[i].Name, b.blogs[i].Description, b.blogs[i].WebsiteURL = in.Name, in.Description, in.WebsiteURL
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) deleteBlog(w http.ResponseWriter, r *http.Request) {
	i := b.findBlog(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	b.blogs = append(b.blogs[:i], b.blogs[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) blogPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := chi.URLParam(r, "id")
	if b.findBlog(id) < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var posts []model.Post
	for _, p := range b.posts {
		if p.BlogID == id {
			posts = append(posts, p)
		}
	}
	writeJSON(w, http.StatusOK, pageOf(r, posts))
}

func (b *fakeBackend) createPost(w http.ResponseWriter, r *http.Request) {
	var in model.PostInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	blogID := chi.URLParam(r, "id")
	nested := blogID != ""
	if !nested {
		blogID = in.BlogID
	}
	i := b.findBlog(blogID)
	switch {
	case i < 0 && nested:
		w.WriteHeader(http.StatusNotFound)
		return
	case i < 0:
		fieldError(w, "blogId", "blog not found")
		return
	}
	post := model.Post{
		ID:               b.nextID("p"),
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Content:          in.Content,
		BlogID:           blogID,
		BlogName:         b.blogs[i].Name,
		CreatedAt:        time.Now(),
	}
	b.posts = append(b.posts, post)
	writeJSON(w, http.StatusCreated, post)
}

func (b *fakeBackend) findPost(id string) int {
	for i, p := range b.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (b *fakeBackend) listPosts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, pageOf(r, b.posts))
}

func (b *fakeBackend) getPost(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findPost(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b.posts[i])
}

func (b *fakeBackend) updatePost(w http.ResponseWriter, r *http.Request) {
	i := b.findPost(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var in model.PostInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	if in.BlogID == "" {
		fieldError(w, "blogId", "blogId is required")
		return
	}
	b.posts[i].Title, b.posts[i].ShortDescription, b.posts[i].Content = in.Title, in.ShortDescription, in.Content
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) deletePost(w http.ResponseWriter, r *http.Request) {
	i := b.findPost(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	b.posts = append(b.posts[:i], b.posts[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) postComments(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := chi.URLParam(r, "id")
	var comments []model.Comment
	for _, c := range b.comments {
		if b.commentPost[c.ID] == id {
			comments = append(comments, c)
		}
	}
	writeJSON(w, http.StatusOK, pageOf(r, comments))
}

func (b *fakeBackend) addComment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.bearer(r)
	if u == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	postID := chi.URLParam(r, "id")
	if b.findPost(postID) < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var in model.CommentInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	comment := model.Comment{
		ID:              b.nextID("c"),
		Content:         in.Content,
		CommentatorInfo: &model.CommentatorInfo{UserID: u.account.ID, UserLogin: u.account.Login},
		CreatedAt:       time.Now(),
	}
	b.comments = append(b.comments, comment)
	b.commentPost[comment.ID] = postID
	writeJSON(w, http.StatusCreated, comment)
}

func (b *fakeBackend) findComment(id string) int {
	for i, c := range b.comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (b *fakeBackend) getComment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.findComment(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, b.comments[i])
}

func (b *fakeBackend) updateComment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.bearer(r)
	i := b.findComment(chi.URLParam(r, "id"))
	switch {
	case u == nil:
		w.WriteHeader(http.StatusUnauthorized)
	case i < 0:
		w.WriteHeader(http.StatusNotFound)
	case b.comments[i].CommentatorInfo.UserID != u.account.ID:
		w.WriteHeader(http.StatusForbidden)
	default:
		var in model.CommentInput
		_ = json.NewDecoder(r.Body).Decode(&in)
		b.comments[i].Content = in.Content
		w.WriteHeader(http.StatusNoContent)
	}
}

func (b *fakeBackend) deleteComment(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.bearer(r)
	i := b.findComment(chi.URLParam(r, "id"))
	switch {
	case u == nil:
		w.WriteHeader(http.StatusUnauthorized)
	case i < 0:
		w.WriteHeader(http.StatusNotFound)
	default:
		b.comments = append(b.comments[:i], b.comments[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (b *fakeBackend) listUsers(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bearer(r) == nil {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	accounts := make([]model.Account, 0, len(b.users))
	for _, u := range b.users {
		accounts = append(accounts, u.account)
	}
	writeJSON(w, http.StatusOK, pageOf(r, accounts))
}

func (b *fakeBackend) createUser(w http.ResponseWriter, r *http.Request) {
	var in model.UserInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	for _, u := range b.users {
		if u.account.Login == in.Login {
			fieldError(w, "login", "login already taken")
			return
		}
	}
	u := b.newUser(b.nextID("u"), in.Login, in.Email, in.Password, model.RoleUser)
	b.users = append(b.users, u)
	writeJSON(w, http.StatusCreated, u.account)
}

func (b *fakeBackend) findUser(id string) int {
	for i, u := range b.users {
		if u.account.ID == id {
			return i
		}
	}
	return -1
}

func (b *fakeBackend) updateRole(w http.ResponseWriter, r *http.Request) {
	i := b.findUser(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var in model.RoleInput
	_ = json.NewDecoder(r.Body).Decode(&in)
	b.users[i].account.Role = in.Role
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) deleteUser(w http.ResponseWriter, r *http.Request) {
	i := b.findUser(chi.URLParam(r, "id"))
	if i < 0 {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	b.users = append(b.users[:i], b.users[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (b *fakeBackend) seedBlog(name string) model.Blog {
	b.mu.Lock()
	defer b.mu.Unlock()
	blog := model.Blog{ID: b.nextID("b"), Name: name, Description: fmt.Sprintf("about %s", name), WebsiteURL: "https://example.com", CreatedAt: time.Now()}
	b.blogs = append(b.blogs, blog)
	return blog
}

func (b *fakeBackend) seedPost(blog model.Blog, title string) model.Post {
	b.mu.Lock()
	defer b.mu.Unlock()
	post := model.Post{ID: b.nextID("p"), Title: title, ShortDescription: "short " + title, Content: "content of " + title, BlogID: blog.ID, BlogName: blog.Name, CreatedAt: time.Now()}
	b.posts = append(b.posts, post)
	return post
}

func (b *fakeBackend) seedComment(post model.Post, login string, content string) model.Comment {
	b.mu.Lock()
	defer b.mu.Unlock()
	var author *fakeUser
	for _, u := range b.users {
		if u.account.Login == login {
			author = u
		}
	}
	comment := model.Comment{
		ID:              b.nextID("c"),
		Content:         content,
		CommentatorInfo: &model.CommentatorInfo{UserID: author.account.ID, UserLogin: author.account.Login},
		CreatedAt:       time.Now(),
	}
	b.comments = append(b.comments, comment)
	b.commentPost[comment.ID] = post.ID
	return comment
}

func (b *fakeBackend) setDown(down bool) {
	b.mu.Lock()
	b.down = down
	b.mu.Unlock()
}

func (b *fakeBackend) commentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.comments)
}

func (b *fakeBackend) blogCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.blogs)
}
