package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipes-service/internal/model"
)

const rollbackSuffix = "_rollback.sql"

// ErrNoMigrations is returned by Rollback when nothing has been applied.
var ErrNoMigrations = errors.New("no migrations to rollback")

// RunMigrations prepares the schema. SQLite uses GORM auto-migration, PostgreSQL applies the
// SQL files in migrationsDir.
func RunMigrations(ctx context.Context, db *gorm.DB, migrationsDir string, log *zap.Logger) error {
	if db.Dialector.Name() == "sqlite" {
		log.Info("Using GORM auto-migration for SQLite")
		return db.WithContext(ctx).AutoMigrate(&model.Recipe{})
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	_, err = NewMigrator(sqlDB, migrationsDir, log).Up(ctx)
	return err
}

// Migrator applies and rolls back versioned SQL files named VERSION_name.sql, with an optional
// VERSION_name_rollback.sql counterpart. Applied versions are tracked in schema_migrations.
type Migrator struct {
	db  *sql.DB
	dir string
	log *zap.Logger
}

// NewMigrator creates a migrator over a PostgreSQL connection.
func NewMigrator(db *sql.DB, dir string, log *zap.Logger) *Migrator {
	return &Migrator{db: db, dir: dir, log: log}
}

// Up applies every pending migration in version order and returns the applied file names.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	files, err := m.files()
	if err != nil {
		return nil, err
	}
	if err := m.ensureTable(ctx); err != nil {
		return nil, err
	}
	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, file := range files {
		version := versionOf(file)
		if applied[version] {
			m.log.Debug("Skipping migration (already applied)", zap.String("file", file))
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, file))
		if err != nil {
			return done, fmt.Errorf("failed to read migration %s: %w", file, err)
		}

		err = m.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", file, err)
			}
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file); err != nil {
				return fmt.Errorf("failed to record migration %s: %w", file, err)
			}
			return nil
		})
		if err != nil {
			return done, err
		}

		m.log.Info("Applied migration", zap.String("file", file))
		done = append(done, file)
	}

	return done, nil
}

// Rollback reverts the most recently applied migration and returns its file name.
func (m *Migrator) Rollback(ctx context.Context) (string, error) {
	if err := m.ensureTable(ctx); err != nil {
		return "", err
	}

	var version, name string
	err := m.db.QueryRowContext(ctx,
		"SELECT version, name FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoMigrations
	}
	if err != nil {
		return "", fmt.Errorf("failed to get last migration: %w", err)
	}

	rollbackFile := strings.TrimSuffix(name, ".sql") + rollbackSuffix
	content, err := os.ReadFile(filepath.Join(m.dir, rollbackFile))
	if err != nil {
		return "", fmt.Errorf("failed to read rollback file %s: %w", rollbackFile, err)
	}

	err = m.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute rollback %s: %w", rollbackFile, err)
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", version); err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	m.log.Info("Rolled back migration", zap.String("file", name))
	return name, nil
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(32) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[string]bool, error) {
	rows, err := m.db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to check migration status: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// files lists forward migrations sorted by name.
func (m *Migrator) files() ([]string, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

func (m *Migrator) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func versionOf(file string) string {
	return strings.SplitN(file, "_", 2)[0]
}
