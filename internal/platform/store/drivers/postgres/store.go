package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/chambershq/chambers/internal/platform/store"

	"github.com/lib/pq"
)

// Config carries connection settings for the control-plane pool and for the
// per-tenant handles this store opens on demand.
type Config struct {
	DSN string

	// Control-plane pool
	MaxConns int
	MaxIdle  int

	// Per-tenant handle pools; each tenant handle is its own *sql.DB
	TenantMaxConns int
	TenantMaxIdle  int
}

type Store struct {
	db  *sql.DB
	cfg Config
}

func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("postgres: empty dsn")
	}
	if cfg.MaxConns <= 0 {
		cfg.MaxConns = 10
	}
	if cfg.MaxIdle <= 0 {
		cfg.MaxIdle = 5
	}
	if cfg.TenantMaxConns <= 0 {
		cfg.TenantMaxConns = 4
	}
	if cfg.TenantMaxIdle <= 0 {
		cfg.TenantMaxIdle = 2
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, cfg: cfg}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tenants() store.Tenants { return &tenantsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConflict translates unique violations (SQLSTATE 23505) into
// store.ErrAlreadyExists.
func mapConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return store.ErrAlreadyExists
	}
	return err
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
