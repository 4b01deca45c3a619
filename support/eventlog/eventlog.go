// Package eventlog persists actor events to SQLite so external observers can
// replay them after the fact. The log is append-only; records are never
// updated or deleted.
package eventlog

import (
	"bytes"
	"database/sql"

	"golang.org/x/xerrors"
	_ "modernc.org/sqlite"

	abi "github.com/vestforge/vesting-actors/actors/abi"
	runtime "github.com/vestforge/vesting-actors/actors/runtime"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	time    INTEGER NOT NULL,
	type    TEXT    NOT NULL,
	payload BLOB    NOT NULL
);
CREATE INDEX IF NOT EXISTS events_type ON events (type);
`

// Store is an append-only event log backed by a SQLite database.
type Store struct {
	db *sql.DB
}

// Record is one persisted event. Payload holds the event's tuple-encoded
// CBOR, decodable with the matching event type's UnmarshalCBOR.
type Record struct {
	Seq     int64
	Time    abi.Timestamp
	Type    string
	Payload []byte
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, xerrors.Errorf("failed to open event log at %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, xerrors.Errorf("failed to initialize event log schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Append serializes an event and appends it to the log with the clock
// reading at which it was emitted.
func (s *Store) Append(now abi.Timestamp, ev runtime.Event) error {
	var buf bytes.Buffer
	if err := ev.MarshalCBOR(&buf); err != nil {
		return xerrors.Errorf("failed to encode %s event: %w", ev.Type(), err)
	}
	_, err := s.db.Exec("INSERT INTO events (time, type, payload) VALUES (?, ?, ?)",
		int64(now), ev.Type(), buf.Bytes())
	if err != nil {
		return xerrors.Errorf("failed to append %s event: %w", ev.Type(), err)
	}
	return nil
}

// Replay invokes fn with every record in append order. Iteration halts if fn
// returns an error.
func (s *Store) Replay(fn func(Record) error) error {
	rows, err := s.db.Query("SELECT seq, time, type, payload FROM events ORDER BY seq")
	if err != nil {
		return xerrors.Errorf("failed to query event log: %w", err)
	}
	defer rows.Close() // nolint:errcheck

	for rows.Next() {
		var rec Record
		var t int64
		if err := rows.Scan(&rec.Seq, &t, &rec.Type, &rec.Payload); err != nil {
			return xerrors.Errorf("failed to scan event record: %w", err)
		}
		rec.Time = abi.Timestamp(t)
		if err := fn(rec); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Count returns the total number of records in the log.
func (s *Store) Count() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM events").Scan(&n); err != nil {
		return 0, xerrors.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

// CountByType returns the number of records with the given type label.
func (s *Store) CountByType(typ string) (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM events WHERE type = ?", typ).Scan(&n); err != nil {
		return 0, xerrors.Errorf("failed to count %s events: %w", typ, err)
	}
	return n, nil
}
