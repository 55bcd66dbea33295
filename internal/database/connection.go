package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the sql connection pool.
type DB struct {
	*sql.DB
}

// Config holds connection pool settings.
type Config struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// NewConnection opens a Postgres connection pool and verifies it with a ping.
func NewConnection(config Config) (*DB, error) {
	db, err := sql.Open("postgres", config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies all pending schema migrations.
func (db *DB) RunMigrations() error {
	return NewMigrator(db.DB).Run()
}

func (db *DB) Close() error {
	return db.DB.Close()
}
