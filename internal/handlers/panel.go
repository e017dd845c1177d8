package handlers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"go.uber.org/zap"

	"lankarail-console/internal/models"
	"lankarail-console/internal/services"
	"lankarail-console/web/templates/components"
)

// Panel is the one loader every resource list uses. Fetch gets the items,
// Render draws them. An empty result shows EmptyText and a failed fetch
// replaces the whole panel body with the error.
type Panel[T any] struct {
	Name      string
	Title     string
	Fetch     func(ctx context.Context, sess *models.Session) ([]T, error)
	Render    func(items []T) templ.Component
	EmptyText string
}

func (p Panel[T]) emptyText() string {
	if p.EmptyText != "" {
		return p.EmptyText
	}
	return "No " + p.Title + " available."
}

// Handler serves the panel's fragment endpoint
func (p Panel[T]) Handler(b *Base) http.HandlerFunc {
	return p.Joined(b, func(_ context.Context, _ *models.Session, items []T) (templ.Component, error) {
		return p.Render(items), nil
	})
}

// Fragment serves a panel body built by load. Failed loads are not retried;
// the panel shows the error until its next reload.
func (b *Base) Fragment(title string, load func(ctx context.Context, sess *models.Session) (templ.Component, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		component, err := load(r.Context(), b.session(r))
		if err != nil {
			if b.expireOn401(w, r, err) {
				return
			}
			b.log(r).Warn("panel load failed", zap.String("panel", title), zap.Error(err))
			component = components.PanelError(title, services.RawText(err))
		}
		b.page(w, r, http.StatusOK, title, component)
	}
}

// Joined is Handler for panels whose rows need other collections. join runs
// only when the panel has items, so an empty list costs a single call.
func (p Panel[T]) Joined(b *Base, join func(ctx context.Context, sess *models.Session, items []T) (templ.Component, error)) http.HandlerFunc {
	return b.Fragment(p.Title, func(ctx context.Context, sess *models.Session) (templ.Component, error) {
		items, err := p.Fetch(ctx, sess)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return components.EmptyState(p.emptyText()), nil
		}
		return join(ctx, sess, items)
	})
}
