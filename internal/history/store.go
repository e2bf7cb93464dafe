// Package history persists analysis results in a local SQLite database so
// past runs can be listed, re-exported, and compared.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/five82/mediaqc/internal/analysis"
	"github.com/five82/mediaqc/internal/errors"
	"github.com/five82/mediaqc/internal/logging"
	"github.com/five82/mediaqc/internal/util"
)

const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = stderrors.New("schema version mismatch")

// ErrNotFound indicates the requested result is not in the history.
var ErrNotFound = stderrors.New("result not found in history")

const schemaSQL = `
CREATE TABLE schema_version (
    version INTEGER NOT NULL
);

CREATE TABLE results (
    id          TEXT PRIMARY KEY,
    file_name   TEXT NOT NULL,
    created_at  TEXT NOT NULL,
    result_json TEXT NOT NULL
);

CREATE INDEX idx_results_created_at ON results(created_at);
`

// Store is a SQLite-backed history of analysis results. Mutations take a
// file lock so concurrent mediaqc processes cannot interleave writes.
type Store struct {
	db     *sql.DB
	lock   *flock.Flock
	logger *logging.Logger
}

// Open opens (or creates) the history database under dir.
func Open(dir string, logger *logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Global()
	}
	if err := util.EnsureDirectory(dir); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewStoreError("open sqlite db", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, errors.NewStoreError(fmt.Sprintf("apply pragma %q", pragma), execErr)
		}
	}

	store := &Store{
		db:     db,
		lock:   flock.New(filepath.Join(dir, "history.lock")),
		logger: logger,
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return errors.NewStoreError("check schema_version table", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return errors.NewStoreError("read schema version", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (run 'mediaqc history clear' or delete the database)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.NewStoreError("begin schema transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return errors.NewStoreError("create schema", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return errors.NewStoreError("record schema version", err)
	}
	if err := tx.Commit(); err != nil {
		return errors.NewStoreError("commit schema", err)
	}
	return nil
}

func (s *Store) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return errors.NewStoreError("acquire history lock", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

// Append stores a result at the head of the history.
func (s *Store) Append(ctx context.Context, result *analysis.Result) error {
	if result == nil {
		return errors.NewStoreError("nil result", nil)
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return errors.NewStoreError("encode result", err)
	}

	return s.withLock(func() error {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO results (id, file_name, created_at, result_json) VALUES (?, ?, ?, ?)",
			result.ID, result.FileName, result.Timestamp, string(payload))
		if err != nil {
			return errors.NewStoreError("insert result", err)
		}
		return nil
	})
}

// AppendAll stores a batch of results, newest-run-first ordering is derived
// from insertion order.
func (s *Store) AppendAll(ctx context.Context, results []*analysis.Result) error {
	for _, r := range results {
		if err := s.Append(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// List returns all stored results, newest first. Rows whose payload no
// longer decodes are skipped with a warning rather than failing the listing.
func (s *Store) List(ctx context.Context) ([]*analysis.Result, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, result_json FROM results ORDER BY rowid DESC")
	if err != nil {
		return nil, errors.NewStoreError("list results", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*analysis.Result
	for rows.Next() {
		var (
			id      string
			payload string
		)
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, errors.NewStoreError("scan result row", err)
		}

		var result analysis.Result
		if err := json.Unmarshal([]byte(payload), &result); err != nil {
			s.logger.Warn("skipping unreadable history row", "id", id, "error", err)
			continue
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("iterate result rows", err)
	}
	return results, nil
}

// Get returns the stored result with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*analysis.Result, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		"SELECT result_json FROM results WHERE id = ?", id).Scan(&payload)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, errors.NewStoreError("load result", err)
	}

	var result analysis.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, errors.NewStoreError("decode stored result", err)
	}
	return &result, nil
}

// Count returns the number of stored results, including unreadable rows.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM results").Scan(&count); err != nil {
		return 0, errors.NewStoreError("count results", err)
	}
	return count, nil
}

// Clear removes all stored results.
func (s *Store) Clear(ctx context.Context) error {
	return s.withLock(func() error {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM results"); err != nil {
			return errors.NewStoreError("clear history", err)
		}
		return nil
	})
}
