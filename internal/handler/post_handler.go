package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogger-web/internal/audit"
	"blogger-web/internal/form"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

type PostHandler struct {
	base
	audit *audit.Recorder
}

func NewPostHandler(deps Deps, recorder *audit.Recorder) *PostHandler {
	return &PostHandler{base: base{deps}, audit: recorder}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)

	posts, err := h.api(r).Posts.List(r.Context(), req)
	if err != nil {
		h.renderFailure(w, r, "posts", "posts.title", view.PostList{}, err)
		return
	}

	h.render(w, http.StatusOK, "posts", h.page(w, r, "posts.title", view.PostList{
		Posts: posts.Items,
		Pager: view.NewPager("/posts", posts, req),
	}))
}

func (h *PostHandler) Show(w http.ResponseWriter, r *http.Request) {
	data, err := h.postDetail(r, chi.URLParam(r, "id"))
	if err != nil {
		h.renderFailure(w, r, "post", "posts.title", data, err)
		return
	}
	h.render(w, http.StatusOK, "post", h.page(w, r, "posts.title", data))
}

// postDetail loads a post and the requested page of its comments. The
// returned detail keeps whatever was loaded before a failure.
func (b base) postDetail(r *http.Request, postID string) (view.PostDetail, error) {
	req := b.pageRequest(r)
	api := b.api(r)

	var data view.PostDetail
	post, err := api.Posts.Get(r.Context(), postID)
	if err != nil {
		return data, err
	}
	data.Post = post

	comments, err := api.Posts.Comments(r.Context(), postID, req)
	if err != nil {
		return data, err
	}
	data.Comments = comments.Items
	data.Pager = view.NewPager(link("posts", postID), comments, req)
	return data, nil
}

func (h *PostHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "post_form", h.page(w, r, "posts.new", view.PostForm{
		BlogID: chi.URLParam(r, "id"),
	}))
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	blogID := chi.URLParam(r, "id")
	in := postInputFrom(r)
	in.BlogID = blogID
	data := view.PostForm{BlogID: blogID, Input: in}
	if err := form.ValidatePost(&in); err != nil {
		h.invalid(w, r, "posts.new", data, err)
		return
	}

	post, err := h.api(r).Posts.Create(r.Context(), blogID, in)
	h.audit.Record(r.Context(), "post.create", actorFromRequest(r), resourceName("posts", post.ID), err)
	if err != nil {
		h.mutationFailed(w, r, "posts.new", data, err, link("blogs", blogID, "posts", "new"))
		return
	}

	h.redirect(w, r, link("posts", post.ID), view.FlashSuccess, "flash.post_created")
}

// NewStandalone offers the top-level post form, where the blog is picked
// from a list instead of taken from the path.
func (h *PostHandler) NewStandalone(w http.ResponseWriter, r *http.Request) {
	data := view.PostForm{}
	blogs, err := h.blogChoices(r)
	if err != nil {
		h.renderFailure(w, r, "post_form", "posts.new", data, err)
		return
	}
	data.Blogs = blogs
	h.render(w, http.StatusOK, "post_form", h.page(w, r, "posts.new", data))
}

func (h *PostHandler) CreateStandalone(w http.ResponseWriter, r *http.Request) {
	in := postInputFrom(r)
	in.BlogID = r.PostFormValue("blogId")
	data := view.PostForm{Input: in}
	blogs, err := h.blogChoices(r)
	if err != nil {
		h.renderFailure(w, r, "post_form", "posts.new", data, err)
		return
	}
	data.Blogs = blogs

	if err := form.ValidatePost(&in); err != nil {
		h.invalid(w, r, "posts.new", data, err)
		return
	}

	post, err := h.api(r).Posts.CreateStandalone(r.Context(), in)
	h.audit.Record(r.Context(), "post.create", actorFromRequest(r), resourceName("posts", post.ID), err)
	if err != nil {
		h.mutationFailed(w, r, "posts.new", data, err, "/posts/new")
		return
	}

	h.redirect(w, r, link("posts", post.ID), view.FlashSuccess, "flash.post_created")
}

// blogChoices is the first page of blogs at the largest page size.
func (b base) blogChoices(r *http.Request) ([]model.Blog, error) {
	size := model.PageSizes[len(model.PageSizes)-1]
	blogs, err := b.api(r).Blogs.List(r.Context(), model.PageRequest{PageNumber: 1, PageSize: size})
	if err != nil {
		return nil, err
	}
	return blogs.Items, nil
}

func (h *PostHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	post, err := h.api(r).Posts.Get(r.Context(), id)
	if err != nil {
		h.renderFailure(w, r, "post_form", "posts.edit", view.PostForm{ID: id}, err)
		return
	}

	h.render(w, http.StatusOK, "post_form", h.page(w, r, "posts.edit", view.PostForm{
		ID:     id,
		BlogID: post.BlogID,
		Input: model.PostInput{
			Title:            post.Title,
			ShortDescription: post.ShortDescription,
			Content:          post.Content,
			BlogID:           post.BlogID,
		},
	}))
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in := postInputFrom(r)
	in.BlogID = r.PostFormValue("blogId")
	data := view.PostForm{ID: id, BlogID: in.BlogID, Input: in}
	if err := form.ValidatePost(&in); err != nil {
		h.invalid(w, r, "posts.edit", data, err)
		return
	}

	err := h.api(r).Posts.Update(r.Context(), id, in)
	h.audit.Record(r.Context(), "post.update", actorFromRequest(r), resourceName("posts", id), err)
	if err != nil {
		h.mutationFailed(w, r, "posts.edit", data, err, link("posts", id, "edit"))
		return
	}

	h.redirect(w, r, link("posts", id), view.FlashSuccess, "flash.post_updated")
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.api(r).Posts.Delete(r.Context(), id)
	h.audit.Record(r.Context(), "post.delete", actorFromRequest(r), resourceName("posts", id), err)
	if err != nil {
		h.redirect(w, r, link("posts", id), view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, "/posts", view.FlashSuccess, "flash.post_deleted")
}

// AddComment posts a comment as the signed-in user.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "id")
	in := model.CommentInput{Content: r.PostFormValue("content")}
	draft := in

	if err := form.ValidateComment(&in); err != nil {
		errs, ok := form.AsErrors(err)
		if !ok {
			errs = form.Errors{"content": err.Error()}
		}
		h.commentRejected(w, r, postID, errs, func(d *view.PostDetail) { d.Draft = draft })
		return
	}

	if _, err := h.api(r).Posts.AddComment(r.Context(), postID, in); err != nil {
		if errs := backendFieldErrors(err); errs != nil {
			h.commentRejected(w, r, postID, errs, func(d *view.PostDetail) { d.Draft = draft })
			return
		}
		h.redirect(w, r, link("posts", postID), view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, link("posts", postID), view.FlashSuccess, "flash.comment_added")
}

// commentRejected re-renders the post page with a comment form error.
func (b base) commentRejected(w http.ResponseWriter, r *http.Request, postID string, errs form.Errors, fill func(*view.PostDetail)) {
	data, err := b.postDetail(r, postID)
	if err != nil {
		b.renderFailure(w, r, "post", "posts.title", data, err)
		return
	}
	fill(&data)
	b.renderInvalid(w, r, "post", "posts.title", data, errs)
}

func (h *PostHandler) invalid(w http.ResponseWriter, r *http.Request, title string, data view.PostForm, err error) {
	errs, ok := form.AsErrors(err)
	if !ok {
		h.renderFailure(w, r, "post_form", title, data, err)
		return
	}
	h.renderInvalid(w, r, "post_form", title, data, errs)
}

func (h *PostHandler) mutationFailed(w http.ResponseWriter, r *http.Request, title string, data view.PostForm, err error, back string) {
	if errs := backendFieldErrors(err); errs != nil {
		h.renderInvalid(w, r, "post_form", title, data, errs)
		return
	}
	h.redirect(w, r, back, view.FlashError, "flash.operation_failed")
}

func postInputFrom(r *http.Request) model.PostInput {
	return model.PostInput{
		Title:            r.PostFormValue("title"),
		ShortDescription: r.PostFormValue("shortDescription"),
		Content:          r.PostFormValue("content"),
	}
}
