package services

import (
	"context"
	"net/http"
	"strconv"

	"lankarail-console/internal/models"
)

// Resource is the one canonical client for a REST collection such as
// /api/admin/trains. Every entity type shares it instead of carrying its
// own bespoke loader.
type Resource[T any] struct {
	client   *APIClient
	basePath string
}

// NewResource binds a collection path to the backend client
func NewResource[T any](client *APIClient, basePath string) *Resource[T] {
	return &Resource[T]{client: client, basePath: basePath}
}

// Path returns the collection path, or the item path when ids are given
func (r *Resource[T]) Path(id ...int64) string {
	if len(id) == 0 {
		return r.basePath
	}
	return r.basePath + "/" + strconv.FormatInt(id[0], 10)
}

// List fetches the whole collection. A JSON null is reported as an empty list.
func (r *Resource[T]) List(ctx context.Context, sess *models.Session) ([]T, error) {
	var items []T
	if err := r.client.Do(ctx, sess, http.MethodGet, r.basePath, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Get fetches one item
func (r *Resource[T]) Get(ctx context.Context, sess *models.Session, id int64) (*T, error) {
	var item T
	if err := r.client.Do(ctx, sess, http.MethodGet, r.Path(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Create posts body to the collection
func (r *Resource[T]) Create(ctx context.Context, sess *models.Session, body interface{}) (*T, error) {
	var item T
	if err := r.client.Do(ctx, sess, http.MethodPost, r.basePath, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update puts body to the item
func (r *Resource[T]) Update(ctx context.Context, sess *models.Session, id int64, body interface{}) (*T, error) {
	var item T
	if err := r.client.Do(ctx, sess, http.MethodPut, r.Path(id), body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes the item
func (r *Resource[T]) Delete(ctx context.Context, sess *models.Session, id int64) error {
	return r.client.Do(ctx, sess, http.MethodDelete, r.Path(id), nil, nil)
}
