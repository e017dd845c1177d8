package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"lankarail-console/internal/middleware"
	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/web/templates/components"
)

// ActionRequest is the submitted form plus the {id} from the URL, if any
type ActionRequest struct {
	ID   int64
	Form url.Values
}

// String returns a trimmed form value
func (a ActionRequest) String(key string) string {
	return strings.TrimSpace(a.Form.Get(key))
}

// Int parses a whole number field
func (a ActionRequest) Int(key string) (int, error) {
	v, err := strconv.Atoi(a.String(key))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", models.ErrInvalidInput, key)
	}
	return v, nil
}

// Int64 parses an id field
func (a ActionRequest) Int64(key string) (int64, error) {
	v, err := strconv.ParseInt(a.String(key), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", models.ErrInvalidInput, key)
	}
	return v, nil
}

// Float parses a decimal field. Blank fields read as zero.
func (a ActionRequest) Float(key string) (float64, error) {
	raw := a.String(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", models.ErrInvalidInput, key)
	}
	return v, nil
}

// Bool reads a checkbox or a "true"/"false" value
func (a ActionRequest) Bool(key string) bool {
	switch strings.ToLower(a.String(key)) {
	case "true", "on", "yes", "1":
		return true
	}
	return false
}

func (a ActionRequest) missing(required []string) []string {
	var out []string
	for _, key := range required {
		if a.String(key) == "" {
			out = append(out, key)
		}
	}
	return out
}

// Action is one create, update, delete or status change the console can
// send to the backend.
type Action struct {
	// Verb prefixes failure messages, as in "Delete failed: ...".
	Verb string
	// Panels are reloaded after success.
	Panels   []string
	Required []string
	// Confirm, when set, returns the question asked before the call is made.
	Confirm func(req ActionRequest) string
	Call    func(ctx context.Context, sess *models.Session, req ActionRequest) error
	Success string
	// Redirect is where a non-HTMX post lands afterwards.
	Redirect string
}

// Dispatch turns an Action into a handler. Nothing is updated optimistically:
// success only tells the affected panels to fetch themselves again.
func (b *Base) Dispatch(a Action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			b.notifyError(w, r, "Invalid form data")
			return
		}

		req := ActionRequest{Form: r.PostForm}
		if raw := chi.URLParam(r, "id"); raw != "" {
			id, err := pathID(r, "id")
			if err != nil {
				b.notifyError(w, r, services.ValidationMessage(err))
				return
			}
			req.ID = id
		}

		if missing := req.missing(a.Required); len(missing) > 0 {
			b.notifyError(w, r, "Please fill in: "+strings.Join(missing, ", "))
			return
		}

		if a.Confirm != nil && req.Form.Get("confirmed") != "yes" {
			b.page(w, r, http.StatusOK, "Please confirm", components.ConfirmDialog(a.Confirm(req), r.URL.Path, req.Form))
			return
		}

		if err := a.Call(r.Context(), b.session(r), req); err != nil {
			if b.expireOn401(w, r, err) {
				return
			}
			b.log(r).Info("action failed", zap.String("path", r.URL.Path), zap.Error(err))
			b.notifyError(w, r, a.Verb+" failed: "+services.ValidationMessage(err))
			return
		}

		b.log(r).Info("action succeeded", zap.String("path", r.URL.Path), zap.Int64("id", req.ID))
		b.succeed(w, r, a)
	}
}

func (b *Base) succeed(w http.ResponseWriter, r *http.Request, a Action) {
	if !middleware.IsHTMXRequest(r) {
		target := a.Redirect
		if target == "" {
			target = middleware.DashboardPath(b.session(r))
		}
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	trigger := map[string]interface{}{
		"close-modal": true,
		"reset-form":  true,
	}
	for _, panel := range a.Panels {
		trigger[components.ReloadEvent(panel)] = true
	}
	if a.Success != "" {
		trigger["notify"] = a.Success
	}

	payload, err := json.Marshal(trigger)
	if err != nil {
		b.log(r).Error("failed to encode HX-Trigger", zap.Error(err))
	} else {
		w.Header().Set("HX-Trigger", string(payload))
	}
	w.WriteHeader(http.StatusOK)
}

// confirmf builds a Confirm func that names the target id
func confirmf(format string) func(ActionRequest) string {
	return func(req ActionRequest) string {
		return fmt.Sprintf(format, req.ID)
	}
}
