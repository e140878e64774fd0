package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	var (
		dsn            string
		migrationsPath string
		direction      string
		steps          int
	)

	flag.StringVar(&dsn, "dsn", os.Getenv("DATABASE_URL"), "postgres connection url")
	flag.StringVar(&migrationsPath, "migrations-path", "./migrations", "path to migrations")
	flag.StringVar(&direction, "direction", "up", "up or down")
	flag.IntVar(&steps, "steps", 0, "number of steps, 0 applies all")
	flag.Parse()

	if dsn == "" {
		log.Fatal("dsn is required")
	}

	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		log.Fatalf("failed to init migrator: %v", err)
	}
	defer m.Close()

	switch {
	case steps != 0 && direction == "down":
		err = m.Steps(-steps)
	case steps != 0:
		err = m.Steps(steps)
	case direction == "down":
		err = m.Down()
	case direction == "up":
		err = m.Up()
	default:
		log.Fatalf("unknown direction %q", direction)
	}

	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("no migrations to apply")
			return
		}
		log.Fatalf("migration failed: %v", err)
	}

	fmt.Println("migrations applied successfully")
}
