package main

import (
	"context"
	"ipbtracker/internal/config"
	"ipbtracker/internal/dbs/postgres"
	"ipbtracker/internal/models"
	userrepo "ipbtracker/internal/repositories/db/user"
	userservice "ipbtracker/internal/services/user"
	"log/slog"
	"os"
	"time"
)

var seedUsers = []struct {
	login string
	role  models.Role
}{
	{login: "admin", role: models.RoleAdmin},
	{login: "kebun", role: models.RoleKebun},
	{login: "teknis", role: models.RoleTeknis},
}

func main() {
	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.New(ctx, postgres.Config{
		Addr:     cfg.DB.Addr,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DB:       cfg.DB.DB,
	})
	if err != nil {
		log.Error("failed connect to db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	repo := userrepo.NewRepository(db)
	users := userservice.New(log, repo, repo)

	failed := false

	for _, u := range seedUsers {
		created, err := users.EnsureUser(ctx, u.login, cfg.Seed.DefaultPassword, u.role)
		if err != nil {
			log.Error("failed to seed user", slog.String("login", u.login), slog.String("error", err.Error()))
			failed = true
			continue
		}

		if created {
			log.Info("seeded user", slog.String("login", u.login), slog.String("role", string(u.role)))
		} else {
			log.Info("user already exists", slog.String("login", u.login))
		}
	}

	if failed {
		os.Exit(1)
	}
}
