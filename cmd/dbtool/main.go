package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/spf13/pflag"

	"github.com/yourusername/quiz-api/internal/config"
	pgRepo "github.com/yourusername/quiz-api/internal/repository/postgres"
	"github.com/yourusername/quiz-api/internal/service"
	"github.com/yourusername/quiz-api/pkg/database"
)

const usage = `Usage: dbtool [flags] <command> [args]

Commands:
  migrate up|down|version   apply, roll back or show schema migrations
  force <version>           mark a migration version as applied and clear the dirty flag
  setup                     apply migrations and create the bootstrap admin account
  seed                      create the sample quizzes (existing titles are skipped)

Flags:
`

func main() {
	configPath := pflag.String("config", envOr("CONFIG_PATH", "config/config.yaml"), "path to the config file")
	source := pflag.String("migrations", database.DefaultMigrationsSource, "migrations source URL")
	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	switch args[0] {
	case "migrate":
		if len(args) < 2 {
			pflag.Usage()
			os.Exit(2)
		}
		err = runMigrate(cfg, *source, args[1])
	case "force":
		if len(args) < 2 {
			pflag.Usage()
			os.Exit(2)
		}
		version, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatalf("Invalid version %q: %v", args[1], convErr)
		}
		err = runForce(cfg, *source, version)
	case "setup":
		if err = runMigrate(cfg, *source, "up"); err == nil {
			err = runSetup(ctx, cfg)
		}
	case "seed":
		err = runSeed(ctx, cfg)
	default:
		pflag.Usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("dbtool %s: %v", args[0], err)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// openMigrator подключается через database/sql, без GORM: так можно чинить базу в грязном состоянии
func openMigrator(cfg *config.Config, source string) (*migrate.Migrate, *sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.PostgresConnectionString())
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("database is unreachable: %w", err)
	}

	m, err := database.NewMigrator(db, source)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return m, db, nil
}

func runMigrate(cfg *config.Config, source, direction string) error {
	m, db, err := openMigrator(cfg, source)
	if err != nil {
		return err
	}
	defer db.Close()

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			fmt.Println("No migrations applied")
			return nil
		}
		if verr != nil {
			return verr
		}
		fmt.Printf("Version: %d, dirty: %t\n", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate direction %q", direction)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		fmt.Println("No changes to apply")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Migrate %s: done\n", direction)
	return nil
}

func runForce(cfg *config.Config, source string, version int) error {
	m, db, err := openMigrator(cfg, source)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Forcing migration version to %d to clean dirty state...\n", version)
	if err := m.Force(version); err != nil {
		return fmt.Errorf("failed to force version: %w", err)
	}
	fmt.Println("Success! Dirty state cleaned. You can now run the app normally.")
	return nil
}

func runSetup(ctx context.Context, cfg *config.Config) error {
	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), false)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(pgRepo.NewUserRepo(db))
	created, err := authService.EnsureAdmin(ctx, cfg.Bootstrap.AdminUsername, cfg.Bootstrap.AdminPassword)
	if err != nil {
		return err
	}
	if created {
		fmt.Printf("Admin account '%s' created\n", cfg.Bootstrap.AdminUsername)
	} else {
		fmt.Printf("Admin account '%s' already exists\n", cfg.Bootstrap.AdminUsername)
	}
	return nil
}

func runSeed(ctx context.Context, cfg *config.Config) error {
	quizzes, err := loadSeedQuizzes()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(cfg.Database.PostgresConnectionString(), false)
	if err != nil {
		return err
	}

	authService := service.NewAuthService(pgRepo.NewUserRepo(db))
	adminID, err := authService.AdminID(ctx, cfg.Bootstrap.AdminUsername)
	if err != nil {
		return fmt.Errorf("no admin found to create quizzes, run 'dbtool setup' first: %w", err)
	}

	quizService := service.NewQuizService(pgRepo.NewQuizRepo(db), nil, cfg.Cache.QuizTTL())
	created, err := quizService.SeedQuizzes(ctx, adminID, quizzes)
	if err != nil {
		return err
	}
	fmt.Printf("Seeded %d of %d quizzes\n", created, len(quizzes))
	return nil
}
