package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"blogger-web/internal/audit"
	"blogger-web/internal/form"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

var assignableRoles = []model.Role{model.RoleUser, model.RoleAdmin}

type UserHandler struct {
	base
	audit *audit.Recorder
}

func NewUserHandler(deps Deps, recorder *audit.Recorder) *UserHandler {
	return &UserHandler{base: base{deps}, audit: recorder}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	req := h.pageRequest(r)
	data := view.UserList{Roles: assignableRoles}

	users, err := h.api(r).Users.List(r.Context(), req)
	if err != nil {
		h.renderFailure(w, r, "users", "users.title", data, err)
		return
	}

	data.Users = users.Items
	data.Pager = view.NewPager("/users", users, req)
	h.render(w, http.StatusOK, "users", h.page(w, r, "users.title", data))
}

func (h *UserHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "user_form", h.page(w, r, "users.new", newUserForm(model.UserInput{})))
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	in := userInputFrom(r)
	data := newUserForm(model.UserInput{Login: in.Login, Email: in.Email})

	if err := form.ValidateUser(&in); err != nil {
		errs, _ := form.AsErrors(err)
		h.renderInvalid(w, r, "user_form", "users.new", data, errs)
		return
	}

	account, err := h.api(r).Users.Create(r.Context(), in)
	h.audit.Record(r.Context(), "user.create", actorFromRequest(r), resourceName("users", account.ID), err)
	if err != nil {
		if errs := backendFieldErrors(err); errs != nil {
			h.renderInvalid(w, r, "user_form", "users.new", data, errs)
			return
		}
		h.redirect(w, r, "/users/new", view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, "/users", view.FlashSuccess, "flash.user_created")
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	role, err := form.ValidateRole(r.PostFormValue("role"))
	if err != nil {
		h.redirect(w, r, "/users", view.FlashError, "flash.operation_failed")
		return
	}

	err = h.api(r).Users.UpdateRole(r.Context(), id, role)
	h.audit.Record(r.Context(), "user.role", actorFromRequest(r), resourceName("users", id), err)
	if err != nil {
		h.redirect(w, r, "/users", view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, "/users", view.FlashSuccess, "flash.role_updated")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := h.api(r).Users.Delete(r.Context(), id)
	h.audit.Record(r.Context(), "user.delete", actorFromRequest(r), resourceName("users", id), err)
	if err != nil {
		h.redirect(w, r, "/users", view.FlashError, "flash.operation_failed")
		return
	}

	h.redirect(w, r, "/users", view.FlashSuccess, "flash.user_deleted")
}

func newUserForm(in model.UserInput) view.UserForm {
	return view.UserForm{Action: "/users/new", Title: "users.new", Input: in}
}
