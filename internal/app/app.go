package app

import (
	"context"
	"fmt"
	"ipbtracker/internal/cache/redis"
	"ipbtracker/internal/config"
	"ipbtracker/internal/dbs/postgres"
	"ipbtracker/internal/metrics"
	cacheipbrepo "ipbtracker/internal/repositories/cache/ipb"
	cachesessionrepo "ipbtracker/internal/repositories/cache/session"
	auditrepo "ipbtracker/internal/repositories/db/audit"
	ipbrepo "ipbtracker/internal/repositories/db/ipb"
	userrepo "ipbtracker/internal/repositories/db/user"
	"ipbtracker/internal/repositories/storage"
	filerepo "ipbtracker/internal/repositories/storage/file"
	miniorepo "ipbtracker/internal/repositories/storage/minio"
	auditservice "ipbtracker/internal/services/audit"
	authservice "ipbtracker/internal/services/auth"
	ipbservice "ipbtracker/internal/services/ipb"
	userservice "ipbtracker/internal/services/user"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type App struct {
	AuthService  *authservice.AuthService
	UserService  *userservice.UserService
	IPBService   *ipbservice.IPBService
	AuditService *auditservice.AuditService
	Metrics      *metrics.Metrics

	db    *sqlx.DB
	cache *redis.Client
}

func NewApp(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	db, err := postgres.New(ctx, postgres.Config{
		Addr:     cfg.DB.Addr,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DB:       cfg.DB.DB})
	if err != nil {
		log.Error("failed connect to db", "err", err)
		return nil, fmt.Errorf("failed connect to db: %w", err)
	}

	cache, err := redis.New(ctx, redis.Config{Addr: cfg.Cache.Addr, Password: cfg.Cache.Password, DB: cfg.Cache.DB})
	if err != nil {
		log.Error("failed connect to cache", "err", err)
		db.Close()
		return nil, fmt.Errorf("failed connect to cache: %w", err)
	}

	blobs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		log.Error("failed to init blob store", "err", err, "backend", cfg.Storage.Backend)
		db.Close()
		cache.Close()
		return nil, fmt.Errorf("failed to init blob store: %w", err)
	}

	m := metrics.New()

	userRepo := userrepo.NewRepository(db)

	sessionCacheRepo := cachesessionrepo.New(cache, cfg.Cache.SessionTTL)

	ipbCacheRepo := cacheipbrepo.New(cache, cfg.Cache.IPBTTL)

	userService := userservice.New(log, userRepo, userRepo)

	authService := authservice.New(log, userService, userService, sessionCacheRepo, cfg.AdminToken)

	auditService := auditservice.New(log, auditrepo.NewRepository(db))

	ipbService := ipbservice.New(log, ipbrepo.NewRepository(db), ipbCacheRepo, blobs, auditService, m, cfg.Storage.MaxUploadSize)

	return &App{
		AuthService:  authService,
		UserService:  userService,
		IPBService:   ipbService,
		AuditService: auditService,
		Metrics:      m,
		db:           db,
		cache:        cache,
	}, nil
}

func (a *App) Close() error {
	cacheErr := a.cache.Close()
	if err := a.db.Close(); err != nil {
		return err
	}
	return cacheErr
}

func newBlobStore(ctx context.Context, cfg config.Storage) (storage.BlobStore, error) {
	switch cfg.Backend {
	case config.StorageMinio:
		repo, err := miniorepo.New(ctx, miniorepo.Config{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		repo := filerepo.NewRepository(cfg.Path)
		if err := repo.Init(); err != nil {
			return nil, err
		}
		return repo, nil
	}
}
