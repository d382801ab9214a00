package db

import (
	"database/sql"
	_ "embed"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tgienger/tm/internal/config"
	"github.com/tgienger/tm/internal/models"
)

//go:embed schema.sql
var schema string

// DB wraps the database connection
type DB struct {
	*sqlx.DB
	now func() time.Time
}

// Option configures a DB at open time
type Option func(*DB)

// WithClock sets the time source used for task timestamps
func WithClock(now func() time.Time) Option {
	return func(db *DB) { db.now = now }
}

// New opens the database at the configured path
func New(cfg *config.Config, opts ...Option) (*DB, error) {
	return Open(cfg.DBPath, opts...)
}

// Open opens (creating if needed) the database file at path. The schema is
// not touched until Initialize is called.
func Open(path string, opts ...Option) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, storageErr("create data directory", err)
	}

	conn, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, storageErr("open", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, storageErr("open", err)
	}
	// sqlite has a single writer; one connection keeps calls strictly serial
	conn.SetMaxOpenConns(1)

	db := &DB{DB: conn, now: time.Now}
	for _, opt := range opts {
		opt(db)
	}

	log.Debug().Str("path", path).Msg("opened database")
	return db, nil
}

// Initialize creates the tables if they do not exist. Safe to run on every start.
func (db *DB) Initialize() error {
	if _, err := db.Exec(schema); err != nil {
		return storageErr("initialize schema", err)
	}
	return nil
}

// timestamp returns the current time in the tasks table encoding
func (db *DB) timestamp() string {
	return db.now().Format(models.TimestampLayout)
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.Get(&value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", storageErr("get setting", err)
	}
	return value, nil
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return storageErr("set setting", err)
	}
	return nil
}
