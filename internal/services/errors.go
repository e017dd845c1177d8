package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"lankarail-console/internal/models"
)

// TransportError means the backend never produced a response
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError is a non-2xx backend response
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string // parsed from {message|error|errors} or the raw text
	Body    string // raw response text
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: backend returned %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// Is maps status codes onto the shared sentinel errors
func (e *APIError) Is(target error) bool {
	switch target {
	case models.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case models.ErrForbidden:
		return e.Status == http.StatusForbidden
	case models.ErrNotFound:
		return e.Status == http.StatusNotFound
	case models.ErrInvalidInput:
		return e.Status == http.StatusBadRequest
	}
	return false
}

// DecodeError is a 2xx response whose body did not match the expected shape
type DecodeError struct {
	Method string
	Path   string
	Body   string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s %s: unexpected response: %v", e.Method, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func newAPIError(method, path string, status int, raw []byte) *APIError {
	return &APIError{
		Method:  method,
		Path:    path,
		Status:  status,
		Message: parseErrorMessage(status, raw),
		Body:    strings.TrimSpace(string(raw)),
	}
}

// parseErrorMessage prefers message, then error, then the joined errors list
// of a JSON body, then the raw text, then the status text.
func parseErrorMessage(status int, raw []byte) string {
	text := strings.TrimSpace(string(raw))

	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil && body != nil {
		if msg, ok := body["message"].(string); ok && msg != "" {
			return msg
		}
		if msg, ok := body["error"].(string); ok && msg != "" {
			return msg
		}
		if list, ok := body["errors"].([]interface{}); ok && len(list) > 0 {
			parts := make([]string, 0, len(list))
			for _, item := range list {
				parts = append(parts, fmt.Sprint(item))
			}
			return strings.Join(parts, ", ")
		}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return s
	}

	if text != "" {
		return text
	}
	if st := http.StatusText(status); st != "" {
		return st
	}
	return "Unknown error"
}

// UserMessage is the text shown in a blocking notification
func UserMessage(err error) string {
	var apiErr *APIError
	var transportErr *TransportError
	var decodeErr *DecodeError
	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &transportErr):
		return "Network error: " + transportErr.Err.Error()
	case errors.As(err, &decodeErr):
		return "Unexpected response from server"
	case err == nil:
		return ""
	}
	return err.Error()
}

// RawText is the text shown inside an inline panel error. HTTP errors show
// the raw response body so nothing the server said is hidden.
func RawText(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Body != "" {
			return apiErr.Body
		}
		return fmt.Sprintf("%d %s", apiErr.Status, apiErr.Message)
	}
	return UserMessage(err)
}

// IsUnauthorized reports whether err is a backend 401
func IsUnauthorized(err error) bool {
	return errors.Is(err, models.ErrUnauthorized)
}
