package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"blogger-web/internal/form"
	"blogger-web/internal/gateway"
	"blogger-web/internal/model"
	"blogger-web/internal/view"
)

type AuthHandler struct {
	base
}

func NewAuthHandler(deps Deps) *AuthHandler {
	return &AuthHandler{base: base{deps}}
}

func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.controller(r).IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login", h.page(w, r, "login.title", view.LoginForm{
		Next: safeNext(r.URL.Query().Get("next")),
	}))
}

// Login exchanges the credentials for an access token and stores it in
// the browser's session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	in := model.LoginInput{
		LoginOrEmail: r.PostFormValue("loginOrEmail"),
		Password:     r.PostFormValue("password"),
	}
	next := safeNext(r.PostFormValue("next"))
	data := view.LoginForm{Input: model.LoginInput{LoginOrEmail: in.LoginOrEmail}, Next: next}

	if err := form.ValidateLogin(&in); err != nil {
		errs, _ := form.AsErrors(err)
		h.renderInvalid(w, r, "login", "login.title", data, errs)
		return
	}

	token, err := h.api(r).Auth.Login(r.Context(), in)
	if err != nil {
		if gateway.StatusOf(err) == http.StatusUnauthorized {
			h.loginFailed(w, r, http.StatusUnauthorized, data, "notice.bad_credentials")
			return
		}
		if errs := backendFieldErrors(err); errs != nil {
			h.renderInvalid(w, r, "login", "login.title", data, errs)
			return
		}
		status, notice := noticeFor(err)
		h.loginFailed(w, r, status, data, notice)
		return
	}

	controller := h.controller(r)
	if err := controller.Login(r.Context(), token); err != nil {
		slog.Error("failed to store session token", "error", err)
		h.loginFailed(w, r, http.StatusInternalServerError, data, "notice.session_failed")
		return
	}
	if !controller.IsAuthenticated() {
		h.loginFailed(w, r, http.StatusBadGateway, data, "notice.backend_failed")
		return
	}

	user, _ := controller.User()
	slog.Info("user signed in", "user_id", user.ID, "login", user.Login)
	h.redirect(w, r, next, view.FlashSuccess, "flash.signed_in")
}

func (h *AuthHandler) loginFailed(w http.ResponseWriter, r *http.Request, status int, data view.LoginForm, notice string) {
	page := h.page(w, r, "login.title", data)
	page.Notice = notice
	h.render(w, status, "login", page)
}

// Logout tells the backend first, while the token is still stored, then
// clears the session whatever the backend answered.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	controller := h.controller(r)

	if controller.IsAuthenticated() {
		if err := h.api(r).Auth.Logout(r.Context()); err != nil {
			slog.Warn("backend logout failed", "error", err)
		}
	}
	if err := controller.Logout(r.Context()); err != nil {
		slog.Error("failed to clear session token", "error", err)
	}

	h.redirect(w, r, "/", view.FlashSuccess, "flash.signed_out")
}

func (h *AuthHandler) RegistrationForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "user_form", h.page(w, r, "registration.title", registrationForm(model.UserInput{})))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	in := userInputFrom(r)
	data := registrationForm(model.UserInput{Login: in.Login, Email: in.Email})

	if err := form.ValidateUser(&in); err != nil {
		errs, _ := form.AsErrors(err)
		h.renderInvalid(w, r, "user_form", "registration.title", data, errs)
		return
	}

	if err := h.api(r).Auth.Register(r.Context(), in); err != nil {
		if errs := backendFieldErrors(err); errs != nil {
			h.renderInvalid(w, r, "user_form", "registration.title", data, errs)
			return
		}
		h.renderFailure(w, r, "user_form", "registration.title", data, err)
		return
	}

	h.redirect(w, r, "/login", view.FlashSuccess, "flash.registered")
}

// Confirm handles the link from the confirmation email.
func (h *AuthHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if code == "" {
		h.render(w, http.StatusBadRequest, "confirmation", h.page(w, r, "confirmation.title", view.Confirmation{
			Message: "confirmation.missing",
		}))
		return
	}

	if err := h.api(r).Auth.ConfirmRegistration(r.Context(), code); err != nil {
		if errors.Is(err, model.ErrInvalidInput) {
			h.render(w, http.StatusBadRequest, "confirmation", h.page(w, r, "confirmation.title", view.Confirmation{
				Message: "confirmation.failed",
			}))
			return
		}
		h.renderFailure(w, r, "confirmation", "confirmation.title", view.Confirmation{}, err)
		return
	}

	h.render(w, http.StatusOK, "confirmation", h.page(w, r, "confirmation.title", view.Confirmation{
		Message: "confirmation.ok",
	}))
}

func (h *AuthHandler) Account(w http.ResponseWriter, r *http.Request) {
	me, err := h.api(r).Auth.Me(r.Context())
	if err != nil {
		h.renderFailure(w, r, "account", "account.title", view.Account{}, err)
		return
	}
	h.render(w, http.StatusOK, "account", h.page(w, r, "account.title", view.Account{Me: me}))
}

func registrationForm(in model.UserInput) view.UserForm {
	return view.UserForm{Action: "/registration", Title: "registration.title", Input: in}
}

func userInputFrom(r *http.Request) model.UserInput {
	return model.UserInput{
		Login:    r.PostFormValue("login"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
}
