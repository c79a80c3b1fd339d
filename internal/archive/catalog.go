// Package archive mirrors cloud recordings to local files and keeps a small
// SQLite catalog of what has already been pulled, so repeated runs only fetch
// new material.
package archive

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current catalog schema version. Bump this when the
// schema changes; users must delete the catalog database afterwards.
const schemaVersion = 1

// ErrSchemaMismatch indicates the catalog database was created by a different
// version of the tool.
var ErrSchemaMismatch = errors.New("catalog schema version mismatch")

// Entry records one archived recording.
type Entry struct {
	RecordingID    string
	Title          string
	TranscriptPath string
	AudioPath      string
	RunID          string
	PulledAt       time.Time
}

// Catalog is the SQLite-backed pull ledger.
type Catalog struct {
	db   *sql.DB
	path string
}

// OpenCatalog initializes or connects to the catalog database at path.
func OpenCatalog(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	catalog := &Catalog{db: db, path: path}
	if err := catalog.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return catalog, nil
}

// Close releases the underlying database handle.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Path returns the catalog database location.
func (c *Catalog) Path() string {
	return c.path
}

func (c *Catalog) initSchema(ctx context.Context) error {
	var tableExists int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		if _, err := c.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create catalog schema: %w", err)
		}
		return nil
	}

	var version int
	err = c.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read catalog schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete the catalog to rebuild)",
			ErrSchemaMismatch, version, schemaVersion)
	}
	return nil
}

// Seen reports whether a recording ID is already cataloged.
func (c *Catalog) Seen(ctx context.Context, recordingID string) (bool, error) {
	var count int
	err := c.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM recordings WHERE recording_id = ?", recordingID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query catalog: %w", err)
	}
	return count > 0, nil
}

// Record upserts one archived recording.
func (c *Catalog) Record(ctx context.Context, entry Entry) error {
	if entry.RecordingID == "" {
		return errors.New("catalog entry has no recording id")
	}
	pulledAt := entry.PulledAt
	if pulledAt.IsZero() {
		pulledAt = time.Now().UTC()
	}
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO recordings (recording_id, title, transcript_path, audio_path, run_id, pulled_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(recording_id) DO UPDATE SET
			title = excluded.title,
			transcript_path = excluded.transcript_path,
			audio_path = excluded.audio_path,
			run_id = excluded.run_id,
			pulled_at = excluded.pulled_at`,
		entry.RecordingID, entry.Title, entry.TranscriptPath, entry.AudioPath,
		entry.RunID, pulledAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("record catalog entry: %w", err)
	}
	return nil
}

// Entries returns all cataloged recordings, newest pull first.
func (c *Catalog) Entries(ctx context.Context) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT recording_id, title, transcript_path, audio_path, run_id, pulled_at
		FROM recordings
		ORDER BY pulled_at DESC, recording_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var pulledAt string
		if err := rows.Scan(&entry.RecordingID, &entry.Title, &entry.TranscriptPath,
			&entry.AudioPath, &entry.RunID, &pulledAt); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		if parsed, parseErr := time.Parse(time.RFC3339, pulledAt); parseErr == nil {
			entry.PulledAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog entries: %w", err)
	}
	return entries, nil
}
