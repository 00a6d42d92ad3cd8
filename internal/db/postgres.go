package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/skillswap/skillswap-backend/internal/logger"
)

const (
	connectTimeout = 10 * time.Second

	// произвольный ключ advisory lock, общий для всех инстансов сервиса
	migrationLockKey = 5_771_120
)

// PoolOptions параметры пула соединений.
type PoolOptions struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

var defaultPool = PoolOptions{MaxOpen: 25, MaxIdle: 5, MaxLifetime: 5 * time.Minute}

// NewPostgres открывает пул и проверяет соединение в пределах connectTimeout.
func NewPostgres(ctx context.Context, dsn string) (*sqlx.DB, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	conn, err := sqlx.ConnectContext(connectCtx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}

	conn.SetMaxOpenConns(defaultPool.MaxOpen)
	conn.SetMaxIdleConns(defaultPool.MaxIdle)
	conn.SetConnMaxLifetime(defaultPool.MaxLifetime)

	return conn, nil
}

type migration struct {
	name string
	path string
}

func loadMigrations(dir string) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("postgres: read migrations dir %s: %w", dir, err)
	}

	out := make([]migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".sql" {
			continue
		}
		out = append(out, migration{name: e.Name(), path: filepath.Join(dir, e.Name())})
	}
	slices.SortFunc(out, func(a, b migration) int { return strings.Compare(a.name, b.name) })
	return out, nil
}

// RunMigrations применяет ещё не выполненные *.sql файлы по возрастанию имени.
// Каждый файл выполняется в своей транзакции.
func RunMigrations(ctx context.Context, conn *sqlx.DB, dir string) error {
	const ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("postgres: schema_migrations: %w", err)
	}

	pending, err := loadMigrations(dir)
	if err != nil {
		return err
	}

	var applied []string
	if err := conn.SelectContext(ctx, &applied, `SELECT name FROM schema_migrations`); err != nil {
		return fmt.Errorf("postgres: list applied migrations: %w", err)
	}

	for _, m := range pending {
		if slices.Contains(applied, m.name) {
			continue
		}
		ok, err := applyMigration(ctx, conn, m)
		if err != nil {
			return err
		}
		if ok {
			logger.Log.WithField("migration", m.name).Info("postgres: migration applied")
		}
	}
	return nil
}

// applyMigration возвращает false, если файл успел применить другой инстанс.
func applyMigration(ctx context.Context, conn *sqlx.DB, m migration) (bool, error) {
	body, err := os.ReadFile(m.path)
	if err != nil {
		return false, fmt.Errorf("postgres: read %s: %w", m.path, err)
	}

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("postgres: begin %s: %w", m.name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockKey); err != nil {
		return false, fmt.Errorf("postgres: lock %s: %w", m.name, err)
	}

	var done bool
	if err := tx.GetContext(ctx, &done, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.name); err != nil {
		return false, fmt.Errorf("postgres: check %s: %w", m.name, err)
	}
	if done {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		return false, fmt.Errorf("postgres: apply %s: %w", m.name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.name); err != nil {
		return false, fmt.Errorf("postgres: record %s: %w", m.name, err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("postgres: commit %s: %w", m.name, err)
	}
	return true, nil
}
