package middleware

import (
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gorilla/mux"
)

func Recovery(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("panic recovered",
						slog.Any("error", err),
						slog.String("request_id", RequestIDFrom(r.Context())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
						slog.String("stack", string(debug.Stack())))

					utils.WriteJSONError(w, http.StatusInternalServerError, models.ErrInternal.Error())
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
