package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const createVersionTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
)`

type migration struct {
	version int
	up      string
	down    string
}

// MigrateUp applies every embedded migration newer than the recorded schema
// version, one transaction each.
func MigrateUp(db *sql.DB) error {
	ctx := context.Background()
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := AppliedVersions(db)
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if slices.Contains(applied, m.version) {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, m.up); err != nil {
				return err
			}
			_, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
				m.version, mustTime(time.Now()))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply migration %04d: %w", m.version, err)
		}
	}
	return nil
}

// MigrateDown reverts every applied migration, newest first.
func MigrateDown(db *sql.DB) error {
	ctx := context.Background()
	migrations, err := loadMigrations()
	if err != nil {
		return err
	}
	applied, err := AppliedVersions(db)
	if err != nil {
		return err
	}
	for _, m := range slices.Backward(migrations) {
		if !slices.Contains(applied, m.version) {
			continue
		}
		err := inTx(ctx, db, func(tx *sql.Tx) error {
			if m.down != "" {
				if _, err := tx.ExecContext(ctx, m.down); err != nil {
					return err
				}
			}
			_, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = ?`, m.version)
			return err
		})
		if err != nil {
			return fmt.Errorf("revert migration %04d: %w", m.version, err)
		}
	}
	return nil
}

// AppliedVersions lists the recorded schema versions in ascending order.
func AppliedVersions(db *sql.DB) ([]int, error) {
	if _, err := db.Exec(createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	rows, err := db.Query(`SELECT version FROM schema_migrations ORDER BY version`)
	if err != nil {
		return nil, fmt.Errorf("read schema versions: %w", err)
	}
	defer rows.Close()
	out := make([]int, 0)
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// loadMigrations pairs NNNN_name.up.sql with its .down.sql, ordered by NNNN.
func loadMigrations() ([]migration, error) {
	names, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	if err != nil {
		return nil, fmt.Errorf("glob migrations: %w", err)
	}
	out := make([]migration, 0, len(names))
	for _, name := range names {
		base := path.Base(name)
		prefix, _, ok := strings.Cut(base, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing version prefix", base)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: bad version %q", base, prefix)
		}
		up, err := migrationFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", base, err)
		}
		down, err := migrationFiles.ReadFile(strings.TrimSuffix(name, ".up.sql") + ".down.sql")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read migration %s: %w", base, err)
		}
		out = append(out, migration{version: version, up: string(up), down: string(down)})
	}
	slices.SortFunc(out, func(a, b migration) int { return a.version - b.version })
	return out, nil
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
