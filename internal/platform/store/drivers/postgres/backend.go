package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chambershq/chambers/internal/platform/store/drivers/postgres/tenantschema"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

// EnsureNamespace creates the tenant's schema if needed and brings it up to
// the embedded baseline. Safe to call repeatedly; CREATE SCHEMA IF NOT EXISTS
// plus versioned migrations make the whole thing idempotent.
func (s *Store) EnsureNamespace(ctx context.Context, namespace string) error {
	if !namespaceRe.MatchString(namespace) {
		return fmt.Errorf("postgres: invalid namespace %q", namespace)
	}

	_, err := s.db.ExecContext(ctx, `CREATE SCHEMA IF NOT EXISTS `+pq.QuoteIdentifier(namespace))
	if err != nil {
		return fmt.Errorf("postgres: create schema %s: %w", namespace, err)
	}

	// Migrations run over a connection pinned to the schema, so the
	// schema_migrations table lands inside it and each tenant tracks its own
	// schema version.
	db, err := s.openScoped(namespace)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	return applyTenantSchema(db)
}

// OpenNamespace opens a connection handle pinned to the tenant's schema.
// Liveness is the caller's problem; this does not ping.
func (s *Store) OpenNamespace(ctx context.Context, namespace string) (*sql.DB, error) {
	if !namespaceRe.MatchString(namespace) {
		return nil, fmt.Errorf("postgres: invalid namespace %q", namespace)
	}
	return s.openScoped(namespace)
}

func (s *Store) openScoped(namespace string) (*sql.DB, error) {
	dsn, err := ScopedDSN(s.cfg.DSN, namespace)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(s.cfg.TenantMaxConns)
	db.SetMaxIdleConns(s.cfg.TenantMaxIdle)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func applyTenantSchema(db *sql.DB) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	src, err := iofs.New(tenantschema.Migrations, ".")
	if err != nil {
		return err
	}

	instance, err := migrate.NewWithInstance("iofs", src, "", driver)
	if err != nil {
		return err
	}

	err = instance.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
