package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/lft-board/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/lft-board/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/lft-board/internal/platform/logging"
)

const seedTimeout = 30 * time.Second

var logger = logging.NewJSON(logging.LevelInfo)

type command struct {
	usage string
	run   func(m *migrate.Migrate, dbURL string, args []string) error
}

var commands = map[string]command{
	"up":      {usage: "up", run: runUp},
	"down":    {usage: "down [steps]", run: runDown},
	"version": {usage: "version", run: runVersion},
	"force":   {usage: "force <version>", run: runForce},
	"goto":    {usage: "goto <version>", run: runGoto},
	"seed":    {usage: "seed", run: runSeed},
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	if name == "migrate" {
		name = "goto"
	}
	cmd, ok := commands[name]
	if !ok {
		printUsage()
		os.Exit(2)
	}

	if err := run(cmd, os.Args[2:]); err != nil {
		logger.Error("migration command failed", "command", name, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cmd command, args []string) error {
	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}
	dbURL, err := withBinaryResultFlag(dbURL, os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT"))
	if err != nil {
		return err
	}

	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	m, err := migrate.New("file://"+filepath.ToSlash(dir), dbURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator", "error", err)
		}
	}()

	return cmd.run(m, dbURL, args)
}

func runUp(m *migrate.Migrate, _ string, _ []string) error {
	if err := ignoreNoChange(m.Up()); err != nil {
		return err
	}
	logger.Info("migrations applied")
	return nil
}

func runDown(m *migrate.Migrate, _ string, args []string) error {
	steps := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || parsed <= 0 {
			return fmt.Errorf("down steps must be a positive integer, got %q", args[0])
		}
		steps = parsed
	}
	if err := ignoreNoChange(m.Steps(-steps)); err != nil {
		return err
	}
	logger.Info("migrations rolled back", "steps", steps)
	return nil
}

func runVersion(m *migrate.Migrate, _ string, _ []string) error {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		fmt.Println("version: none")
		fmt.Println("dirty: false")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read version: %w", err)
	}
	fmt.Printf("version: %d\n", version)
	fmt.Printf("dirty: %t\n", dirty)
	return nil
}

func runForce(m *migrate.Migrate, _ string, args []string) error {
	version, err := versionArg(args)
	if err != nil {
		return err
	}
	if version > uint(^uint(0)>>1) {
		return fmt.Errorf("version %d is too large for this platform", version)
	}
	if err := m.Force(int(version)); err != nil {
		return fmt.Errorf("force version %d: %w", version, err)
	}
	logger.Info("forced migration version", "version", version)
	return nil
}

func runGoto(m *migrate.Migrate, _ string, args []string) error {
	version, err := versionArg(args)
	if err != nil {
		return err
	}
	if err := ignoreNoChange(m.Migrate(version)); err != nil {
		return err
	}
	logger.Info("migrated to version", "version", version)
	return nil
}

// runSeed applies pending migrations and loads the default play style tags
// into an empty tag table.
func runSeed(m *migrate.Migrate, dbURL string, _ []string) error {
	if err := ignoreNoChange(m.Up()); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", dbURL)
	if err != nil {
		return fmt.Errorf("connect for seed: %w", err)
	}
	defer db.Close()

	tags := memory.SeedPlayStyleTags()
	if err := postgres.BootstrapSeed(ctx, db, tags); err != nil {
		return err
	}
	logger.Info("play style tags seeded", "candidates", len(tags))
	return nil
}

func versionArg(args []string) (uint, error) {
	if len(args) == 0 {
		return 0, errors.New("a version argument is required")
	}
	value, err := strconv.ParseUint(strings.TrimSpace(args[0]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	return uint(value), nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return nil
	}
	if err != nil {
		return fmt.Errorf("run migration: %w", err)
	}
	return nil
}

// withBinaryResultFlag mirrors the API's DB_DISABLE_PREPARED_BINARY_RESULT
// handling, which defaults to on.
func withBinaryResultFlag(dbURL, flag string) (string, error) {
	enabled := true
	if strings.TrimSpace(flag) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(flag))
		if err != nil {
			return "", fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
		}
		enabled = parsed
	}
	if !enabled {
		return dbURL, nil
	}

	parsed, err := url.Parse(dbURL)
	if err != nil || parsed.Scheme == "" {
		return dbURL, nil
	}
	query := parsed.Query()
	if query.Get("disable_prepared_binary_result") == "" {
		query.Set("disable_prepared_binary_result", "yes")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String(), nil
}

func migrationsDir() (string, error) {
	candidates := []string{
		os.Getenv("MIGRATIONS_DIR"),
		"./db/migrations",
		"/app/db/migrations",
	}
	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", errors.New("migration directory not found (checked MIGRATIONS_DIR, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	bin := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <command> [args]\n", bin)
	for _, name := range []string{"up", "down", "version", "force", "goto", "seed"} {
		fmt.Fprintf(os.Stderr, "  %s %s\n", bin, commands[name].usage)
	}
}
