package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/vadimbarashkov/shortlinks/internal/entity"
)

type userIDKey struct{}

// userIDFromContext returns the authenticated user id, or nil for anonymous requests.
func userIDFromContext(ctx context.Context) *uuid.UUID {
	id, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// authenticate resolves the bearer token into a user id. Requests without an
// Authorization header pass through anonymously; a malformed or invalid token
// is rejected.
func authenticate(tokens tokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, invalidTokenResponse)
				return
			}

			userID, err := tokens.Parse(token)
			if err != nil {
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, invalidTokenResponse)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireUser rejects anonymous requests.
func requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userIDFromContext(r.Context()) == nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, unauthorizedResponse)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// mustUserID returns the user id of a request that passed requireUser.
func mustUserID(r *http.Request) uuid.UUID {
	return *userIDFromContext(r.Context())
}

// recoverer turns a panicking handler into a 500 error envelope and records
// the panic on the request log line.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			httplog.LogEntrySetField(r.Context(), "panic", slog.AnyValue(rec))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, errorResponse{
				Status:  statusError,
				Kind:    entity.KindUnknown,
				Message: serverErrorMessage,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
