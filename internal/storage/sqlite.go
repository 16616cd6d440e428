package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/matsen/notiongraph/internal/record"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection holding record snapshots.
type DB struct {
	db     *sql.DB
	logger *zap.Logger
}

// Snapshot describes the last stored fetch of one database.
type Snapshot struct {
	DatabaseID  string    `json:"database_id"`
	FetchedAt   time.Time `json:"fetched_at"`
	RecordCount int       `json:"record_count"`
	Fingerprint string    `json:"fingerprint"`
}

// Option configures a DB.
type Option func(*DB)

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(d *DB) {
		if l != nil {
			d.logger = l
		}
	}
}

// OpenDB opens or creates a SQLite database at the given path.
func OpenDB(path string, opts ...Option) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	d := &DB{db: db, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		-- One row per record, position keeps the fetch order
		CREATE TABLE IF NOT EXISTS records (
			database_id TEXT NOT NULL,
			id TEXT NOT NULL,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			created_time TEXT,
			last_edited_time TEXT,
			url TEXT,
			keywords_json TEXT NOT NULL,
			props_json TEXT NOT NULL,
			PRIMARY KEY (database_id, id)
		);

		CREATE INDEX IF NOT EXISTS idx_records_position ON records(database_id, position);

		CREATE TABLE IF NOT EXISTS snapshots (
			database_id TEXT PRIMARY KEY,
			fetched_at INTEGER NOT NULL,
			record_count INTEGER NOT NULL,
			fingerprint TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// ReplaceRecords stores records as the current snapshot of databaseID,
// replacing any previous one. changed reports whether the content differs
// from the previous snapshot. Records with a repeated id keep the first
// occurrence.
func (d *DB) ReplaceRecords(databaseID string, records []record.Record, fetchedAt time.Time) (changed bool, err error) {
	if databaseID == "" {
		return false, errors.New("database id is required")
	}

	fingerprint, err := Fingerprint(records)
	if err != nil {
		return false, err
	}
	prev, found, err := d.Snapshot(databaseID)
	if err != nil {
		return false, err
	}
	changed = !found || prev.Fingerprint != fingerprint

	tx, err := d.db.Begin()
	if err != nil {
		return false, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.Exec("DELETE FROM records WHERE database_id = ?", databaseID); err != nil {
		return false, fmt.Errorf("clearing records: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO records (
			database_id, id, position, title,
			created_time, last_edited_time, url,
			keywords_json, props_json
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return false, fmt.Errorf("preparing record insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for i, r := range records {
		keywords := r.Keywords
		if keywords == nil {
			keywords = []string{}
		}
		keywordsJSON, err := json.Marshal(keywords)
		if err != nil {
			return false, fmt.Errorf("marshaling keywords for %s: %w", r.ID, err)
		}
		props := r.Props
		if props == nil {
			props = map[string]record.Value{}
		}
		propsJSON, err := json.Marshal(props)
		if err != nil {
			return false, fmt.Errorf("marshaling properties for %s: %w", r.ID, err)
		}

		res, err := stmt.Exec(
			databaseID, r.ID, i, r.Title,
			nullableString(r.CreatedTime), nullableString(r.LastEditedTime), nullableString(r.URL),
			string(keywordsJSON), string(propsJSON),
		)
		if err != nil {
			return false, fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			count++
		} else {
			d.logger.Debug("skipping duplicate record", zap.String("id", r.ID))
		}
	}

	_, err = tx.Exec(`
		INSERT INTO snapshots (database_id, fetched_at, record_count, fingerprint)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(database_id) DO UPDATE SET
			fetched_at = excluded.fetched_at,
			record_count = excluded.record_count,
			fingerprint = excluded.fingerprint
	`, databaseID, fetchedAt.Unix(), count, fingerprint)
	if err != nil {
		return false, fmt.Errorf("updating snapshot: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("committing snapshot: %w", err)
	}

	d.logger.Debug("stored snapshot",
		zap.String("database_id", databaseID),
		zap.Int("records", count),
		zap.Bool("changed", changed))
	return changed, nil
}

// LoadRecords returns the stored records of databaseID in fetch order.
// An unknown database yields an empty slice.
func (d *DB) LoadRecords(databaseID string) ([]record.Record, error) {
	rows, err := d.db.Query(`
		SELECT id, title, created_time, last_edited_time, url, keywords_json, props_json
		FROM records WHERE database_id = ? ORDER BY position
	`, databaseID)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	records := []record.Record{}
	for rows.Next() {
		var r record.Record
		var created, edited, url sql.NullString
		var keywordsJSON, propsJSON string
		if err := rows.Scan(&r.ID, &r.Title, &created, &edited, &url, &keywordsJSON, &propsJSON); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.CreatedTime = created.String
		r.LastEditedTime = edited.String
		r.URL = url.String
		if err := json.Unmarshal([]byte(keywordsJSON), &r.Keywords); err != nil {
			return nil, fmt.Errorf("parsing keywords for %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(propsJSON), &r.Props); err != nil {
			return nil, fmt.Errorf("parsing properties for %s: %w", r.ID, err)
		}
		if r.Props == nil {
			r.Props = map[string]record.Value{}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// Snapshot returns the snapshot metadata of databaseID.
func (d *DB) Snapshot(databaseID string) (Snapshot, bool, error) {
	row := d.db.QueryRow(`
		SELECT database_id, fetched_at, record_count, fingerprint
		FROM snapshots WHERE database_id = ?
	`, databaseID)
	s, err := scanSnapshot(row)
	if err == sql.ErrNoRows {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	return s, true, nil
}

// ListSnapshots returns every stored snapshot ordered by database id.
func (d *DB) ListSnapshots() ([]Snapshot, error) {
	rows, err := d.db.Query(`
		SELECT database_id, fetched_at, record_count, fingerprint
		FROM snapshots ORDER BY database_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []Snapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating snapshots: %w", err)
	}
	return snapshots, nil
}

// DeleteSnapshot removes the records and metadata of databaseID.
func (d *DB) DeleteSnapshot(databaseID string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM records WHERE database_id = ?", databaseID); err != nil {
		tx.Rollback()
		return fmt.Errorf("deleting records: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM snapshots WHERE database_id = ?", databaseID); err != nil {
		tx.Rollback()
		return fmt.Errorf("deleting snapshot: %w", err)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (Snapshot, error) {
	var s Snapshot
	var fetchedAt int64
	if err := row.Scan(&s.DatabaseID, &fetchedAt, &s.RecordCount, &s.Fingerprint); err != nil {
		if err == sql.ErrNoRows {
			return Snapshot{}, err
		}
		return Snapshot{}, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.FetchedAt = time.Unix(fetchedAt, 0).UTC()
	return s, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
