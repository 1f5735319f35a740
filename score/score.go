// Package score persists hiscores in a SQLite database. The schema is
// created by embedded migrations applied at most once each, so opening an
// existing database is always safe.
package score

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/barragelab/barrage/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const migrationTable = "schema_migrations"

// Entry is one hiscore row.
type Entry struct {
	Name     string
	Score    int
	Recorded time.Time
}

// Store is a hiscore database. Safe for concurrent use; database/sql
// serializes access to the single SQLite connection.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies
// pending migrations. Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "open score db")
	}

	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Submit records a run. Blank names are stored as "anonymous".
func (s *Store) Submit(ctx context.Context, name string, score int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "anonymous"
	}
	if score < 0 {
		return errors.InvalidData(errors.PhaseStore, []string{"score"}, "score must not be negative")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO hiscores (name, score, recorded_at) VALUES (?, ?, ?)`,
		name, score, time.Now().Unix())
	if err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "submit score")
	}
	return nil
}

// Top returns up to n entries, best first; ties go to the newer run.
func (s *Store) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		n = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, recorded_at FROM hiscores
		 ORDER BY score DESC, recorded_at DESC LIMIT ?`, n)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "query hiscores")
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var unix int64
		if err := rows.Scan(&e.Name, &e.Score, &unix); err != nil {
			return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "scan hiscore")
		}
		e.Recorded = time.Unix(unix, 0)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "iterate hiscores")
	}
	return entries, nil
}

// applyMigrations executes embedded migrations at most once per file.
func applyMigrations(db *sql.DB) error {
	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
);
`, migrationTable)
	if _, err := db.Exec(createSQL); err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "ensure migration table")
	}

	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindNotFound, err, "read migrations")
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	for _, file := range files {
		applied, err := isApplied(db, file)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		content, err := fs.ReadFile(migrationFS, "migrations/"+file)
		if err != nil {
			return errors.Wrap(errors.PhaseStore, errors.KindNotFound, err, "read migration "+file)
		}

		tx, err := db.Begin()
		if err != nil {
			return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "begin migration "+file)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "apply migration "+file)
		}
		if _, err := tx.Exec(
			fmt.Sprintf("INSERT INTO %s (name, applied_at) VALUES (?, ?)", migrationTable),
			file, time.Now().Unix()); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "record migration "+file)
		}
		if err := tx.Commit(); err != nil {
			return errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "commit migration "+file)
		}
	}
	return nil
}

func isApplied(db *sql.DB, name string) (bool, error) {
	var count int
	err := db.QueryRow(
		fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE name = ?", migrationTable),
		name).Scan(&count)
	if err != nil {
		return false, errors.Wrap(errors.PhaseStore, errors.KindInvalidData, err, "check migration "+name)
	}
	return count > 0, nil
}
