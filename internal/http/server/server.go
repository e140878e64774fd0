package server

import (
	"context"
	"errors"
	"ipbtracker/internal/config"
	"ipbtracker/internal/http/handlers/audit"
	"ipbtracker/internal/http/handlers/ipb"
	"ipbtracker/internal/http/handlers/session"
	"ipbtracker/internal/http/handlers/user"
	"ipbtracker/internal/http/middleware"
	"ipbtracker/internal/models"
	utils "ipbtracker/internal/utils/http_errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Deps struct {
	IPBService   IPBService
	AuthService  AuthService
	UserService  UserService
	AuditService AuditService
	Metrics      Metrics
}

func StartServer(ctx context.Context, cfg *config.HTTPServer, log *slog.Logger, deps Deps) error {
	srv := &http.Server{
		Addr:         cfg.Address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
		Handler:      NewRouter(log, deps),
	}

	errChan := make(chan error, 1)

	go func() {
		log.Info("server started", slog.String("address", cfg.Address))
		if err := srv.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) {
				log.Info("server closed gracefully")
			} else {
				log.Error("could not start server:", "error", err)
				errChan <- err
			}
		}
	}()
	select {
	case <-ctx.Done():
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("error shutting down server", "error", err)
			return err
		}
		log.Info("server exited gracefully")
		return nil
	case err := <-errChan:
		return err
	}
}

func NewRouter(log *slog.Logger, deps Deps) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Use(middleware.Metrics(deps.Metrics))

	setupRoutes(r, log, deps)

	return r
}

func setupRoutes(r *mux.Router, log *slog.Logger, deps Deps) {
	auth := deps.AuthService
	ipbs := deps.IPBService

	// GET metrics
	r.Handle("/metrics", deps.Metrics.Handler()).Methods(http.MethodGet)

	// POST user
	r.HandleFunc("/api/register", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// POST session
	r.HandleFunc("/api/auth", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session.Add(ctx, log, w, r, auth)
	}).Methods(http.MethodPost)

	// DELETE session
	r.HandleFunc("/api/auth/{token}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		token := vars["token"]
		session.Delete(ctx, log, w, r, token, auth)
	}).Methods(http.MethodDelete)

	protected := r.PathPrefix("/api").Subrouter()

	protected.Use(middleware.Auth(log, auth))

	// GET ipbs
	protected.HandleFunc("/ipbs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.List(ctx, log, w, r, ipbs, deps.UserService)
	}).Methods(http.MethodGet)

	// HEAD ipbs
	protected.HandleFunc("/ipbs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.Head(ctx, log, w, r, ipbs, deps.UserService)
	}).Methods(http.MethodHead)

	// POST ipb
	protected.HandleFunc("/ipbs", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.Create(ctx, log, w, r, ipbs)
	}).Methods(http.MethodPost)

	// GET ipb by id
	protected.HandleFunc("/ipbs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.GetByID(ctx, log, w, r, mux.Vars(r)["id"], ipbs)
	}).Methods(http.MethodGet)

	// HEAD ipb by id
	protected.HandleFunc("/ipbs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.HeadByID(ctx, log, w, r, mux.Vars(r)["id"], ipbs)
	}).Methods(http.MethodHead)

	// PUT ipb by id
	protected.HandleFunc("/ipbs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.Update(ctx, log, w, r, mux.Vars(r)["id"], ipbs)
	}).Methods(http.MethodPut)

	// DELETE ipb by id
	protected.HandleFunc("/ipbs/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.Delete(ctx, log, w, r, mux.Vars(r)["id"], ipbs)
	}).Methods(http.MethodDelete)

	// POST items import
	protected.HandleFunc("/ipbs/{id}/import", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.Import(ctx, log, w, r, mux.Vars(r)["id"], ipbs)
	}).Methods(http.MethodPost)

	// GET items export
	protected.HandleFunc("/ipbs/{id}/export", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ipb.Export(ctx, log, w, r, mux.Vars(r)["id"], ipbs)
	}).Methods(http.MethodGet)

	// GET attachment
	protected.HandleFunc("/ipbs/{id}/attachments/{slot}", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		vars := mux.Vars(r)
		ipb.Attachment(ctx, log, w, r, vars["id"], vars["slot"], ipbs)
	}).Methods(http.MethodGet)

	admin := protected.PathPrefix("/audit-logs").Subrouter()

	admin.Use(middleware.RequireRole(log, models.RoleAdmin))

	// GET audit log
	admin.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		audit.List(ctx, log, w, r, deps.AuditService)
	}).Methods(http.MethodGet)

	// Not allowed
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, http.StatusMethodNotAllowed, models.ErrMethodNotAllowed.Error())
	})

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteStatusError(w, http.StatusNotFound)
	})
}
