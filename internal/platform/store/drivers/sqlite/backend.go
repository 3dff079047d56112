package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/chambershq/chambers/internal/platform/store/drivers/sqlite/tenantschema"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "modernc.org/sqlite"
)

// namespaceRe guards namespace strings: they become filenames under dataDir,
// so anything else could escape the directory.
var namespaceRe = regexp.MustCompile(`^[a-z0-9_]+$`)

// Backend provisions and opens per-tenant databases as files under a data
// directory, one file per namespace. Isolation comes from the filesystem;
// nothing a tenant handle does can see another tenant's file.
type Backend struct {
	dataDir  string
	maxConns int
	maxIdle  int
}

func NewBackend(dataDir string, maxConns, maxIdle int) *Backend {
	return &Backend{dataDir: dataDir, maxConns: maxConns, maxIdle: maxIdle}
}

// EnsureNamespace creates the tenant database file if needed and brings its
// schema up to date. Safe to call repeatedly.
func (b *Backend) EnsureNamespace(ctx context.Context, namespace string) error {
	if !namespaceRe.MatchString(namespace) {
		return fmt.Errorf("sqlite: invalid namespace %q", namespace)
	}

	if err := os.MkdirAll(b.dataDir, 0o755); err != nil {
		return fmt.Errorf("sqlite: create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", b.dsn(namespace))
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return err
	}

	return applyTenantSchema(db)
}

// OpenNamespace opens a connection handle onto an existing tenant database.
// Liveness is the caller's problem; this does not ping.
func (b *Backend) OpenNamespace(ctx context.Context, namespace string) (*sql.DB, error) {
	if !namespaceRe.MatchString(namespace) {
		return nil, fmt.Errorf("sqlite: invalid namespace %q", namespace)
	}

	db, err := sql.Open("sqlite", b.dsn(namespace))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(b.maxConns)
	db.SetMaxIdleConns(b.maxIdle)
	return db, nil
}

func (b *Backend) dsn(namespace string) string {
	path := filepath.Join(b.dataDir, namespace+".db")
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)", path)
}

// applyTenantSchema brings a tenant database up to the embedded baseline.
// Each tenant file carries its own schema_migrations table, so tenants can
// be migrated independently.
func applyTenantSchema(db *sql.DB) error {
	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
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
