// Package testutil provides shared helpers for tests that need Postgres or Redis.
// Helpers skip the calling test when the backing service is unreachable, unless
// TEST_REQUIRE_INFRA (or the per-service variant) asks for a hard failure.
package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	// Register the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/learnsphere/learnsphere-ui/internal/migrate"
)

// TestingTB covers both *testing.T and *testing.B.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// TestDBConfig holds the test database coordinates.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a postgres URL.
func (c TestDBConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// DefaultTestDBConfig reads TEST_DB_* variables. The port defaults to the
// docker compose test profile (55432); CI sets TEST_DB_PORT=5432.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "learnsphere"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "learnsphere"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "learnsphere"),
		SSLMode:  getEnvOrDefault("DB_SSL_MODE", "disable"),
	}
}

// RunMigrations applies the production migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	_, err := migrate.Run(ctx, db, nil)
	return err
}

// SetupAutoDB returns a per-test schema when TEST_DB_EPHEMERAL is truthy and
// the shared test database otherwise.
func SetupAutoDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)
	if envBool("TEST_DB_EPHEMERAL") {
		return SetupEphemeralSchemaDB(t)
	}
	return SetupTestDB(t)
}

// SetupTestDB opens the shared test database, migrates it and empties the
// tables. The handle is closed when the test ends.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	db := openPinged(t, DefaultTestDBConfig().DSN())
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := RunMigrations(ctx, db); err != nil {
		closeAndLog(t, "test DB", db)
		t.Fatal("run migrations:", err)
	}
	CleanupTestDB(t, db)
	onCleanup(t, func() { closeAndLog(t, "test DB", db) })
	return db
}

// CleanupTestDB deletes every row written by tests.
func CleanupTestDB(t TestingTB, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "DELETE FROM client_storage"); err != nil {
		t.Fatalf("clean client_storage: %v", err)
	}
}

// SkipIfNoTestDB skips (or fails, when required) if Postgres is unreachable.
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()
	db, err := sql.Open("pgx", DefaultTestDBConfig().DSN())
	if err == nil {
		defer closeAndLog(t, "probe DB", db)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		err = db.PingContext(ctx)
	}
	if err == nil {
		return
	}
	if requireDB() {
		t.Fatal("test database not available:", err)
	}
	t.Skip("test database not available:", err)
}

// SetupEphemeralSchemaDB creates a random schema, points search_path at it,
// migrates it and drops it when the test ends.
func SetupEphemeralSchemaDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	cfg := DefaultTestDBConfig()
	admin := openPinged(t, cfg.DSN())
	schema := schemaName()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
		closeAndLog(t, "admin DB", admin)
		t.Fatalf("create schema %s: %v", schema, err)
	}

	u, err := url.Parse(cfg.DSN())
	if err != nil {
		closeAndLog(t, "admin DB", admin)
		t.Fatal("parse DSN:", err)
	}
	q := u.Query()
	q.Set("search_path", schema+",public")
	u.RawQuery = q.Encode()
	db := openPinged(t, u.String())
	db.SetMaxOpenConns(10)

	t.Logf("using ephemeral schema %s", schema)
	onCleanup(t, func() {
		closeAndLog(t, "schema DB", db)
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		if _, dropErr := admin.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); dropErr != nil {
			t.Logf("warning: drop schema %s: %v", schema, dropErr)
		}
		closeAndLog(t, "admin DB", admin)
	})

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatal("run migrations in ephemeral schema:", err)
	}
	return db
}

func openPinged(t TestingTB, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatal("open database:", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		closeAndLog(t, "database", db)
		t.Fatal("ping database (is docker compose up?):", err)
	}
	return db
}

func schemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

func closeAndLog(t TestingTB, name string, closer interface{ Close() error }) {
	if err := closer.Close(); err != nil {
		t.Logf("warning: close %s: %v", name, err)
	}
}

// onCleanup registers fn with t.Cleanup when available. Benchmarks driven
// through a bare TestingTB get no cleanup.
func onCleanup(t TestingTB, fn func()) {
	if tc, ok := any(t).(interface{ Cleanup(func()) }); ok {
		tc.Cleanup(fn)
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }
