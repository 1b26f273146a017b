// Package cache provides a SQLite query cache of the aggregate quest file.
//
// The cache is a derived artifact: it is rebuilt wholesale from the
// aggregate and is never read back by split, merge or delete. It exists so
// maintainers can look quests up by id, code or name without loading the
// whole aggregate into an editor.
//
// Architecture:
//   - Database file: .questtool/cache.db (configurable)
//   - WAL mode with a busy timeout
//   - Schema: quests table holding the raw record JSON plus the few
//     columns worth indexing (code, name, position)
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/kcwiki/questtool/internal/index"
	"github.com/kcwiki/questtool/internal/logging"
	"github.com/kcwiki/questtool/internal/quest"
)

var (
	// ErrNotFound is returned by Get when no quest has the requested id.
	ErrNotFound = errors.New("quest not found in cache")

	// ErrNeverSynced is returned by LastSync before the first Rebuild.
	ErrNeverSynced = errors.New("cache has never been synced")
)

// SyncRun describes one Rebuild.
type SyncRun struct {
	ID       string
	Quests   int
	SyncedAt time.Time
}

// DB wraps the SQLite connection of the query cache.
type DB struct {
	conn   *sql.DB
	path   string
	logger *logging.Logger
}

// Open creates or opens the cache database at path.
//
// The caller MUST call Close() when done.
//
// Example:
//
//	db, err := cache.Open(".questtool/cache.db", nil)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
func Open(path string, logger *logging.Logger) (*DB, error) {
	if logger == nil {
		logger = logging.Default("cache")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping cache: %w", err)
	}

	// One writer at a time; the cache is only ever used by one process.
	conn.SetMaxOpenConns(1)
	conn.SetConnMaxLifetime(5 * time.Minute)

	db := &DB{conn: conn, path: path, logger: logger}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return db, nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection after a WAL checkpoint.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	if _, err := db.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		db.logger.Warnf("failed to checkpoint WAL: %v", err)
	}

	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}

	db.conn = nil
	return nil
}

// InitSchema creates the cache schema if it doesn't exist. Idempotent.
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS quests (
		game_id   TEXT PRIMARY KEY,
		position  INTEGER NOT NULL,
		wiki_id   TEXT NOT NULL DEFAULT '',
		code      TEXT NOT NULL DEFAULT '',  -- normalized wiki_id
		name      TEXT NOT NULL DEFAULT '',
		body      TEXT NOT NULL,             -- raw record JSON
		synced_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_quests_code ON quests(code);
	CREATE INDEX IF NOT EXISTS idx_quests_position ON quests(position);

	CREATE TABLE IF NOT EXISTS sync_runs (
		id        TEXT PRIMARY KEY,
		quests    INTEGER NOT NULL,
		synced_at TEXT NOT NULL
	);
	`

	if _, err := db.conn.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Rebuild replaces the cache contents with records in one transaction.
func (db *DB) Rebuild(ctx context.Context, records []*quest.Record) (err error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO quests (game_id, position, wiki_id, code, name, body, synced_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(game_id) DO UPDATE SET
		position = excluded.position,
		wiki_id = excluded.wiki_id,
		code = excluded.code,
		name = excluded.name,
		body = excluded.body,
		synced_at = excluded.synced_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for i, r := range records {
		wikiID := r.WikiID()
		if _, err = stmt.ExecContext(ctx,
			r.ID,
			i,
			wikiID,
			index.NormalizeCode(wikiID),
			r.Name(),
			string(r.Raw()),
			now,
		); err != nil {
			return fmt.Errorf("failed to cache quest %s: %w", r.ID, err)
		}
	}

	runID := uuid.NewString()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO sync_runs (id, quests, synced_at) VALUES (?, ?, ?)`,
		runID, len(records), now,
	); err != nil {
		return fmt.Errorf("failed to record sync run: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cache rebuild: %w", err)
	}

	db.logger.Debugf("cached %d quests in %s (run %s)", len(records), db.path, runID)
	return nil
}

// LastSync returns the most recent Rebuild.
func (db *DB) LastSync(ctx context.Context) (*SyncRun, error) {
	var run SyncRun
	var syncedAt string
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, quests, synced_at FROM sync_runs ORDER BY rowid DESC LIMIT 1`,
	).Scan(&run.ID, &run.Quests, &syncedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNeverSynced
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read last sync: %w", err)
	}

	run.SyncedAt, err = time.Parse(time.RFC3339, syncedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid sync time %q: %w", syncedAt, err)
	}
	return &run, nil
}

// Count returns the number of cached quests.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM quests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count quests: %w", err)
	}
	return n, nil
}

// Get returns the cached record with the given id.
func (db *DB) Get(ctx context.Context, id string) (*quest.Record, error) {
	var body string
	err := db.conn.QueryRowContext(ctx, `SELECT body FROM quests WHERE game_id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quest %s: %w", id, err)
	}

	return quest.Parse([]byte(body))
}

// Search returns quests whose code, wiki_id or name contains text, in
// aggregate order. Codes are matched both raw and normalized.
func (db *DB) Search(ctx context.Context, text string, limit int) ([]*quest.Record, error) {
	if limit <= 0 {
		limit = 50
	}
	pattern := "%" + text + "%"

	rows, err := db.conn.QueryContext(ctx, `
	SELECT body FROM quests
	WHERE code LIKE ? OR wiki_id LIKE ? OR name LIKE ? OR code = ?
	ORDER BY position
	LIMIT ?
	`, pattern, pattern, pattern, index.NormalizeCode(text), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search quests: %w", err)
	}
	defer rows.Close()

	var records []*quest.Record
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan quest: %w", err)
		}
		r, err := quest.Parse([]byte(body))
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quests: %w", err)
	}

	return records, nil
}
