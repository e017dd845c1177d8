package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lankarail-console/internal/logger"
	"lankarail-console/internal/middleware"
	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/web/templates/components"
	"lankarail-console/web/templates/pages"
)

// Base holds what every handler needs to answer a request
type Base struct {
	sessions *middleware.SessionManager
	logger   *zap.Logger
}

// NewBase creates the shared handler base
func NewBase(sessions *middleware.SessionManager, log *zap.Logger) *Base {
	if log == nil {
		log = zap.NewNop()
	}
	return &Base{sessions: sessions, logger: log}
}

func (b *Base) log(r *http.Request) *zap.Logger {
	return logger.For(r.Context(), b.logger)
}

func (b *Base) session(r *http.Request) *models.Session {
	return middleware.GetSessionFromContext(r.Context())
}

func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		b.log(r).Error("failed to render", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

// page renders a fragment as is for HTMX and inside the layout otherwise
func (b *Base) page(w http.ResponseWriter, r *http.Request, status int, title string, component templ.Component) {
	if !middleware.IsHTMXRequest(r) {
		component = pages.Layout(title, b.session(r), component)
	}
	b.render(w, r, status, component)
}

// modal shows a form or dialog in the page's modal container
func (b *Base) modal(w http.ResponseWriter, r *http.Request, title string, body templ.Component) {
	b.page(w, r, http.StatusOK, title, components.Modal(title, body))
}

// notifyError shows a blocking error notification. HTMX requests are
// retargeted at #notifications so the form or panel that sent them stays put.
func (b *Base) notifyError(w http.ResponseWriter, r *http.Request, message string) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Retarget", "#notifications")
		w.Header().Set("HX-Reswap", "innerHTML")
	}
	b.page(w, r, http.StatusUnprocessableEntity, "Error", components.Notification(components.NotifyError, message))
}

// expireOn401 ends the session and sends the browser to the login page when
// the backend no longer accepts it. It reports whether it answered.
func (b *Base) expireOn401(w http.ResponseWriter, r *http.Request, err error) bool {
	if !services.IsUnauthorized(err) {
		return false
	}
	b.log(r).Info("backend rejected session, signing out")
	if clearErr := b.sessions.Clear(w, r); clearErr != nil {
		b.log(r).Error("failed to clear session", zap.Error(clearErr))
	}
	middleware.Redirect(w, r, middleware.LoginPath)
	return true
}

// failed handles an error from a backend call made outside a panel or action
func (b *Base) failed(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	if b.expireOn401(w, r, err) {
		return
	}
	b.log(r).Warn(prefix, zap.Error(err))
	b.notifyError(w, r, prefix+": "+services.UserMessage(err))
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", models.ErrInvalidInput, raw)
	}
	return id, nil
}
