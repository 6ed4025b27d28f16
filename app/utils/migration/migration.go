// Package migration applies versioned SQL migrations from an embedded
// filesystem. Files come in NNN_name.up.sql / NNN_name.down.sql pairs;
// applied versions are tracked in schema_migrations together with a
// checksum so an edit to an already-applied file is caught instead of
// silently ignored.
package migration

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

type Migration struct {
	Version  int
	Name     string
	UpSQL    string
	DownSQL  string
	Checksum string
}

type appliedRecord struct {
	Version   int
	Name      string
	Checksum  string
	AppliedAt time.Time
}

type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
	source fs.FS
}

func NewMigrator(db *sql.DB, logger *slog.Logger, source fs.FS) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger.With("component", "migrator"),
		source: source,
	}
}

// Up applies every pending migration in version order. Before applying
// anything it verifies that already-applied files have not been edited
// since they ran.
func (m *Migrator) Up() error {
	if err := m.ensureTable(); err != nil {
		return err
	}

	available, err := m.load()
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	for _, mig := range available {
		rec, done := applied[mig.Version]
		if done {
			if rec.Checksum != mig.Checksum {
				return fmt.Errorf("migration %d (%s) changed after being applied", mig.Version, mig.Name)
			}
			continue
		}

		if err := m.runInTx(mig.UpSQL, func(tx *sql.Tx) error {
			_, err := tx.Exec(
				`INSERT INTO schema_migrations (version, name, checksum) VALUES ($1, $2, $3)`,
				mig.Version, mig.Name, mig.Checksum)
			return err
		}); err != nil {
			return fmt.Errorf("apply migration %d: %w", mig.Version, err)
		}

		m.logger.Info("migration applied", "version", mig.Version, "name", mig.Name)
	}

	return nil
}

// Down rolls back the most recently applied migration.
func (m *Migrator) Down() error {
	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		m.logger.Info("no migrations to roll back")
		return nil
	}

	latest := 0
	for v := range applied {
		if v > latest {
			latest = v
		}
	}

	available, err := m.load()
	if err != nil {
		return err
	}

	var target *Migration
	for i := range available {
		if available[i].Version == latest {
			target = &available[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration %d is applied but missing from the filesystem", latest)
	}

	if err := m.runInTx(target.DownSQL, func(tx *sql.Tx) error {
		_, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, target.Version)
		return err
	}); err != nil {
		return fmt.Errorf("roll back migration %d: %w", target.Version, err)
	}

	m.logger.Info("migration rolled back", "version", target.Version, "name", target.Name)
	return nil
}

// Status logs one line per known migration, applied or pending.
func (m *Migrator) Status() error {
	available, err := m.load()
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	for _, mig := range available {
		if rec, ok := applied[mig.Version]; ok {
			m.logger.Info("applied",
				"version", mig.Version,
				"name", mig.Name,
				"applied_at", rec.AppliedAt.Format(time.RFC3339))
		} else {
			m.logger.Info("pending", "version", mig.Version, "name", mig.Name)
		}
	}

	return nil
}

func (m *Migrator) ensureTable() error {
	_, err := m.db.Exec(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP,
		checksum VARCHAR(64) NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

// load reads every up/down pair from the source filesystem, sorted by
// version. A missing down file is an error: every migration must be
// reversible.
func (m *Migrator) load() ([]Migration, error) {
	var migrations []Migration

	err := fs.WalkDir(m.source, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".up.sql") {
			return nil
		}

		version, name, ok := parseFilename(filepath.Base(path))
		if !ok {
			m.logger.Warn("skipping unrecognized migration filename", "filename", filepath.Base(path))
			return nil
		}

		up, err := fs.ReadFile(m.source, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		downPath := strings.TrimSuffix(path, ".up.sql") + ".down.sql"
		down, err := fs.ReadFile(m.source, downPath)
		if err != nil {
			return fmt.Errorf("read %s: %w", downPath, err)
		}

		migrations = append(migrations, Migration{
			Version:  version,
			Name:     name,
			UpSQL:    string(up),
			DownSQL:  string(down),
			Checksum: checksum(string(up)),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load migrations: %w", err)
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

func (m *Migrator) appliedVersions() (map[int]appliedRecord, error) {
	rows, err := m.db.Query(`SELECT version, name, checksum, applied_at FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]appliedRecord)
	for rows.Next() {
		var rec appliedRecord
		if err := rows.Scan(&rec.Version, &rec.Name, &rec.Checksum, &rec.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan migration row: %w", err)
		}
		applied[rec.Version] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return applied, nil
}

// runInTx executes the migration SQL and the bookkeeping statement in a
// single transaction so a half-applied migration never gets recorded.
func (m *Migrator) runInTx(stmt string, record func(*sql.Tx) error) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	if err := record(tx); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}

	return tx.Commit()
}

// parseFilename splits "001_create_identities.up.sql" into (1,
// "create_identities", true).
func parseFilename(filename string) (version int, name string, ok bool) {
	base := strings.TrimSuffix(filename, ".up.sql")
	idx := strings.Index(base, "_")
	if idx <= 0 {
		return 0, "", false
	}

	version, err := strconv.Atoi(base[:idx])
	if err != nil {
		return 0, "", false
	}

	return version, base[idx+1:], true
}

func checksum(content string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
