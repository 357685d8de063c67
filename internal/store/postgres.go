// Package store owns the Postgres connection pool and schema migrations.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"bookscape/db"
)

// DB bundles the native pool with a database/sql view of it. Both share the
// same connections.
type DB struct {
	Pool *pgxpool.Pool
	SQL  *sqlx.DB
}

// Open creates the pool and verifies connectivity.
func Open(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &DB{Pool: pool, SQL: sqlx.NewDb(stdlib.OpenDBFromPool(pool), "pgx")}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

func (d *DB) Close() {
	_ = d.SQL.Close()
	d.Pool.Close()
}

// Migrator applies goose migrations from a filesystem.
type Migrator struct {
	fsys fs.FS
	dir  string
}

// NewMigrator reads the migrations compiled into the binary.
func NewMigrator() *Migrator {
	return &Migrator{fsys: db.Migrations, dir: db.MigrationsDir}
}

// NewDirMigrator reads migrations from a directory on disk.
func NewDirMigrator(dir string) *Migrator {
	return &Migrator{dir: dir}
}

func (m *Migrator) setup() error {
	goose.SetBaseFS(m.fsys)
	return goose.SetDialect("postgres")
}

func (m *Migrator) Up(ctx context.Context, sqlDB *sql.DB) error {
	if err := m.setup(); err != nil {
		return err
	}
	return goose.UpContext(ctx, sqlDB, m.dir)
}

func (m *Migrator) Down(ctx context.Context, sqlDB *sql.DB) error {
	if err := m.setup(); err != nil {
		return err
	}
	return goose.DownContext(ctx, sqlDB, m.dir)
}

func (m *Migrator) Status(ctx context.Context, sqlDB *sql.DB) error {
	if err := m.setup(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, sqlDB, m.dir)
}

// Create writes a new SQL migration file. Only valid for disk migrators.
func (m *Migrator) Create(name string) error {
	if m.fsys != nil {
		return fmt.Errorf("cannot create migrations in an embedded filesystem")
	}
	goose.SetBaseFS(nil)
	return goose.Create(nil, m.dir, name, "sql")
}

// Versions lists the migration versions the migrator can apply.
func (m *Migrator) Versions() ([]int64, error) {
	if err := m.setup(); err != nil {
		return nil, err
	}
	migrations, err := goose.CollectMigrations(m.dir, 0, goose.MaxVersion)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(migrations))
	for i, mig := range migrations {
		out[i] = mig.Version
	}
	return out, nil
}
