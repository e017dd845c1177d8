package handlers

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"lankarail-console/internal/middleware"
	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/internal/types"
	"lankarail-console/web/templates/pages"
)

const registeredNotice = "Registered successfully. You can now sign in."

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	*Base
	auth services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(base *Base, auth services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{Base: base, auth: auth}
}

// Home sends the browser to its dashboard or to the login page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	if !sess.Authenticated() {
		http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, middleware.DashboardPath(sess), http.StatusSeeOther)
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	form := types.AuthForm{Redirect: safeRedirect(r.URL.Query().Get("redirect"))}
	if r.URL.Query().Get("registered") == "1" {
		form.Notice = registeredNotice
	}
	h.render(w, r, http.StatusOK, pages.LoginPage(form))
}

// LoginSubmit signs in against the backend and stores the identity it returns
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pages.LoginPage(types.AuthForm{Error: "Invalid form data"}))
		return
	}

	form := types.AuthForm{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Redirect: safeRedirect(r.PostForm.Get("redirect")),
	}
	password := r.PostForm.Get("password")

	if msg := checkCredentials(form.Email, password); msg != "" {
		form.Error = msg
		h.render(w, r, http.StatusUnprocessableEntity, pages.LoginPage(form))
		return
	}

	sess, err := h.auth.Login(r.Context(), models.Credentials{Email: form.Email, Password: password})
	if err != nil {
		h.log(r).Info("login failed", zap.String("email", form.Email), zap.Error(err))
		form.Error = "Login failed: " + services.ValidationMessage(err)
		h.render(w, r, http.StatusUnprocessableEntity, pages.LoginPage(form))
		return
	}

	// a fresh token for the signed in session
	sess.CSRFToken = middleware.GenerateCSRFToken()
	if err := h.sessions.Save(w, r, sess); err != nil {
		h.log(r).Error("failed to save session", zap.Error(err))
		form.Error = "Login failed: could not start a session"
		h.render(w, r, http.StatusInternalServerError, pages.LoginPage(form))
		return
	}

	h.log(r).Info("user signed in", zap.String("email", sess.Email), zap.String("role", sess.Role))
	target := form.Redirect
	if target == "" {
		target = middleware.DashboardPath(sess)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RegisterPage renders the signup form
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, pages.RegisterPage(types.AuthForm{}))
}

// RegisterSubmit creates a member account and sends the user to sign in
func (h *AuthHandler) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, pages.RegisterPage(types.AuthForm{Error: "Invalid form data"}))
		return
	}

	form := types.AuthForm{Email: strings.TrimSpace(r.PostForm.Get("email"))}
	password := r.PostForm.Get("password")

	msg := checkCredentials(form.Email, password)
	if msg == "" && password != r.PostForm.Get("confirmPassword") {
		msg = "Passwords do not match."
	}
	if msg != "" {
		form.Error = msg
		h.render(w, r, http.StatusUnprocessableEntity, pages.RegisterPage(form))
		return
	}

	if _, err := h.auth.Register(r.Context(), models.Credentials{Email: form.Email, Password: password}); err != nil {
		h.log(r).Info("registration failed", zap.String("email", form.Email), zap.Error(err))
		form.Error = "Registration failed: " + services.ValidationMessage(err)
		h.render(w, r, http.StatusUnprocessableEntity, pages.RegisterPage(form))
		return
	}

	http.Redirect(w, r, middleware.LoginPath+"?registered=1", http.StatusSeeOther)
}

// Logout tells the backend, then forgets the session whatever it answered
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := h.session(r); sess.Authenticated() {
		h.auth.Logout(r.Context(), sess)
	}
	if err := h.sessions.Clear(w, r); err != nil {
		h.log(r).Error("failed to clear session", zap.Error(err))
	}
	middleware.Redirect(w, r, middleware.LoginPath)
}

func checkCredentials(email, password string) string {
	if !models.ValidEmail(email) {
		return "Please enter a valid email."
	}
	if len(password) < models.MinPasswordLength {
		return "Password must be at least 8 characters."
	}
	return ""
}

// safeRedirect keeps post-login redirects on this site
func safeRedirect(target string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	return target
}
