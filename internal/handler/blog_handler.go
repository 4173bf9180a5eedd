package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogger-web/internal/audit"
	"blogger-web/internal/form"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

type BlogHandler struct {
	base
	audit *audit.Recorder
}

func NewBlogHandler(deps Deps, recorder *audit.Recorder) *BlogHandler {
	return &BlogHandler{base: base{deps}, audit: recorder}
}

// List is the home page.
func (h *BlogHandler) List(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)

	blogs, err := h.api(r).Blogs.List(r.Context(), req)
	if err != nil {
		h.renderFailure(w, r, "home", "blogs.title", view.BlogList{}, err)
		return
	}

	h.render(w, http.StatusOK, "home", h.page(w, r, "blogs.title", view.BlogList{
		Blogs: blogs.Items,
		Pager: view.NewPager("/", blogs, req),
	}))
}

func (h *BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req := h.pageRequest(r)
	api := h.api(r)

	blog, err := api.Blogs.Get(r.Context(), id)
	if err != nil {
		h.renderFailure(w, r, "blog", "blogs.title", view.BlogDetail{}, err)
		return
	}

	data := view.BlogDetail{Blog: blog}
	posts, err := api.Blogs.Posts(r.Context(), id, req)
	if err != nil {
		h.renderFailure(w, r, "blog", "blogs.title", data, err)
		return
	}
	data.Posts = posts.Items
	data.Pager = view.NewPager(link("blogs", id), posts, req)

	h.render(w, http.StatusOK, "blog", h.page(w, r, "blogs.title", data))
}

func (h *BlogHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "blog_form", h.page(w, r, "blogs.new", view.BlogForm{}))
}

func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := blogInputFrom(r)
	data := view.BlogForm{Input: in}
	if err := form.ValidateBlog(&in); err != nil {
		h.invalid(w, r, "blogs.new", data, err)
		return
	}

	blog, err := h.api(r).Blogs.Create(r.Context(), in)
	h.audit.Record(r.Context(), "blog.create", actorFromRequest(r), resourceName("blogs", blog.ID), err)
	if err != nil {
		h.mutationFailed(w, r, "blogs.new", data, err, "/blogs/new")
		return
	}

	h.redirect(w, r, link("blogs", blog.ID), view.FlashSuccess, "flash.blog_created")
}

func (h *BlogHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	blog, err := h.api(r).Blogs.Get(r.Context(), id)
	if err != nil {
		h.renderFailure(w, r, "blog_form", "blogs.edit", view.BlogForm{ID: id}, err)
		return
	}

	h.render(w, http.StatusOK, "blog_form", h.page(w, r, "blogs.edit", view.BlogForm{
		ID: id,
		Input: model.BlogInput{
			Name:        blog.Name,
			Description: blog.Description,
			WebsiteURL:  blog.WebsiteURL,
		},
	}))
}

func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	in := blogInputFrom(r)
	data := view.BlogForm{ID: id, Input: in}
	if err := form.ValidateBlog(&in); err != nil {
		h.invalid(w, r, "blogs.edit", data, err)
		return
	}

	err := h.api(r).Blogs.Update(r.Context(), id, in)
	h.audit.Record(r.Context(), "blog.update", actorFromRequest(r), resourceName("blogs", id), err)
	if err != nil {
		h.mutationFailed(w, r, "blogs.edit", data, err, link("blogs", id, "edit"))
		return
	}

	h.redirect(w, r, link("blogs", id), view.FlashSuccess, "flash.blog_updated")
}

func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.api(r).Blogs.Delete(r.Context(), id)
	h.audit.Record(r.Context(), "blog.delete", actorFromRequest(r), resourceName("blogs", id), err)
	if err != nil {
		h.redirect(w, r, link("blogs", id), view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, "/", view.FlashSuccess, "flash.blog_deleted")
}

func (h *BlogHandler) invalid(w http.ResponseWriter, r *http.Request, title string, data view.BlogForm, err error) {
	errs, ok := form.AsErrors(err)
	if !ok {
		h.renderFailure(w, r, "blog_form", title, data, err)
		return
	}
	h.renderInvalid(w, r, "blog_form", title, data, errs)
}

// mutationFailed shows backend field rejections inline; any other failure
// goes back to the form with a flash.
func (h *BlogHandler) mutationFailed(w http.ResponseWriter, r *http.Request, title string, data view.BlogForm, err error, back string) {
	if errs := backendFieldErrors(err); errs != nil {
		h.renderInvalid(w, r, "blog_form", title, data, errs)
		return
	}
	h.redirect(w, r, back, view.FlashError, "flash.operation_failed")
}

func blogInputFrom(r *http.Request) model.BlogInput {
	return model.BlogInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		WebsiteURL:  r.PostFormValue("websiteUrl"),
	}
}
