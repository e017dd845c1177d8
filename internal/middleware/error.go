package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"lankarail-console/internal/logger"
)

// Recoverer turns a panic into a 500 and logs the stack
func Recoverer(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}

					logger.For(r.Context(), log).Error("panic serving request",
						zap.Any("panic", err),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)

					if IsHTMXRequest(r) {
						writeAlert(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
					} else {
						http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			writeAlert(w, http.StatusNotFound, "The page you're looking for doesn't exist.")
			return
		}
		http.Error(w, "404 page not found", http.StatusNotFound)
	})
}

// MethodNotAllowedHandler handles 405 errors
func MethodNotAllowedHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsHTMXRequest(r) {
			writeAlert(w, http.StatusMethodNotAllowed, "Method not allowed for this endpoint.")
			return
		}
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
