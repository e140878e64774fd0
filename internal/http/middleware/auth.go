package middleware

import (
	"context"
	"errors"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
	"strings"
)

func Auth(log *slog.Logger, storer SessionStorer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			op := pkg + "Auth"

			log := log.With(slog.String("op", op), slog.String("request_id", RequestIDFrom(r.Context())))

			token := TokenFrom(r)
			if token == "" {
				log.Warn("missing token")
				utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
				return
			}

			requester, err := storer.UserByToken(r.Context(), token)
			if err != nil {
				if errors.Is(err, models.ErrUnauthorized) {
					log.Warn("invalid token")
					utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
					return
				}
				log.Error("failed get user by token", slog.String("error", err.Error()))
				utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
				return
			}

			ctx := context.WithValue(r.Context(), models.UserContextKey, requester)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated users whose role is not listed. It must
// run after Auth.
func RequireRole(log *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requester, ok := r.Context().Value(models.UserContextKey).(*models.User)
			if !ok {
				utils.WriteJSONError(w, http.StatusUnauthorized, models.ErrUnauthorized.Error())
				return
			}

			for _, role := range roles {
				if requester.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Warn("role not allowed",
				slog.String("op", pkg+"RequireRole"),
				slog.String("user_id", requester.ID),
				slog.String("role", string(requester.Role)),
				slog.String("path", r.URL.Path))
			utils.WriteJSONError(w, http.StatusForbidden, models.ErrForbidden.Error())
		})
	}
}

// TokenFrom reads the session token from "Authorization: Bearer <token>",
// falling back to the token query parameter.
func TokenFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}

	return r.URL.Query().Get("token")
}
