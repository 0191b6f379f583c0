package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPostgres initializes and returns a PostgreSQL connection pool
func InitPostgres() (*pgxpool.Pool, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnvOrDefault("POSTGRES_HOST", "localhost")
		port := getEnvOrDefault("POSTGRES_PORT", "5432")
		user := getEnvOrDefault("POSTGRES_USER", "timeline")
		password := os.Getenv("POSTGRES_PASSWORD")
		dbname := getEnvOrDefault("POSTGRES_DB", "timelineapp")
		sslmode := getEnvOrDefault("POSTGRES_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			user, password, host, port, dbname, sslmode)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute * 5

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pool, nil
}

// createTables creates all required tables if they don't exist
func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Users table - local accounts, password hashed with bcrypt
	usersTable := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username VARCHAR(150) UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			is_admin BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	// User profiles - display identity and permission flags
	userProfilesTable := `
		CREATE TABLE IF NOT EXISTS user_profiles (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			display_name VARCHAR(100) NOT NULL,
			email_address VARCHAR(255) UNIQUE NOT NULL,
			first_name VARCHAR(50) NOT NULL DEFAULT '',
			last_name VARCHAR(50) NOT NULL DEFAULT '',
			position_role VARCHAR(100) NOT NULL DEFAULT '',
			can_pin_own BOOLEAN NOT NULL DEFAULT FALSE,
			can_pin_any BOOLEAN NOT NULL DEFAULT FALSE,
			can_delete_any BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	// Form types - database cache of the in-process form registry.
	// Rows are deactivated when a type leaves the registry, never deleted.
	formTypesTable := `
		CREATE TABLE IF NOT EXISTS form_types (
			type VARCHAR(50) PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			icon VARCHAR(10) NOT NULL DEFAULT '📋',
			description TEXT NOT NULL DEFAULT '',
			schema_version INTEGER NOT NULL DEFAULT 1,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			is_default BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	// Form access - one grant per (user, form type)
	formAccessTable := `
		CREATE TABLE IF NOT EXISTS form_access (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			form_type VARCHAR(50) NOT NULL REFERENCES form_types(type) ON DELETE CASCADE,
			granted_by UUID NULL REFERENCES users(id) ON DELETE SET NULL,
			granted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(user_id, form_type)
		);
	`

	// Entries - timeline posts with a JSONB payload per form type
	entriesTable := `
		CREATE TABLE IF NOT EXISTS entries (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			form_type VARCHAR(50) NOT NULL REFERENCES form_types(type),
			schema_version INTEGER NOT NULL DEFAULT 1,
			pinned BOOLEAN NOT NULL DEFAULT FALSE,
			payload JSONB NOT NULL,
			image_path TEXT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`

	// Sessions - issued bearer tokens, purged nightly after expiry
	sessionsTable := `
		CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		);
	`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_entries_timeline ON entries(pinned DESC, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_user_created ON entries(user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_form_type ON entries(form_type);`,
		`CREATE INDEX IF NOT EXISTS idx_form_access_user ON form_access(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_expires ON sessions(expires_at);`,
	}

	tables := []string{usersTable, userProfilesTable, formTypesTable, formAccessTable, entriesTable, sessionsTable}

	for _, table := range tables {
		if _, err := pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := pool.Exec(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
