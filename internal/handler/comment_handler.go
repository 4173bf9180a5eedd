package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"blogger-web/internal/audit"
	"blogger-web/internal/form"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

// CommentHandler edits and deletes comments. The backend call carries the
// session token; ownership is checked here first so the user gets a clear
// notice instead of a backend 403.
type CommentHandler struct {
	base
	audit *audit.Recorder
}

func NewCommentHandler(deps Deps, recorder *audit.Recorder) *CommentHandler {
	return &CommentHandler{base: base{deps}, audit: recorder}
}

func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := backToPost(r)
	api := h.api(r)

	comment, err := api.Comments.Get(r.Context(), id)
	if err != nil {
		h.redirect(w, r, back, view.FlashError, "flash.operation_failed")
		return
	}
	if !h.controller(r).CanEditComment(comment) {
		h.redirect(w, r, back, view.FlashError, "flash.comment_forbidden")
		return
	}

	in := model.CommentInput{Content: r.PostFormValue("content")}
	edit := in
	if err := form.ValidateComment(&in); err != nil {
		errs, ok := form.AsErrors(err)
		if !ok {
			errs = form.Errors{"content": err.Error()}
		}
		postID := strings.TrimSpace(r.PostFormValue("postId"))
		h.commentRejected(w, r, postID, errs, func(d *view.PostDetail) {
			d.EditID = id
			d.Edit = edit
		})
		return
	}

	if err := api.Comments.Update(r.Context(), id, in); err != nil {
		h.redirect(w, r, back, view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, back, view.FlashSuccess, "flash.comment_updated")
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	back := backToPost(r)
	api := h.api(r)
	controller := h.controller(r)

	comment, err := api.Comments.Get(r.Context(), id)
	if err != nil {
		h.redirect(w, r, back, view.FlashError, "flash.operation_failed")
		return
	}
	if !controller.CanDeleteComment(comment) {
		h.redirect(w, r, back, view.FlashError, "flash.comment_forbidden")
		return
	}

	err = api.Comments.Delete(r.Context(), id)
	if controller.IsAdmin() {
		h.audit.Record(r.Context(), "comment.delete", actorFromRequest(r), resourceName("comments", id), err)
	}
	if err != nil {
		h.redirect(w, r, back, view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, back, view.FlashSuccess, "flash.comment_deleted")
}

func backToPost(r *http.Request) string {
	postID := strings.TrimSpace(r.PostFormValue("postId"))
	if postID == "" {
		return "/posts"
	}
	return link("posts", postID)
}
