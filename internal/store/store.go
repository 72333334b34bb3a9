// Package store persists named paint-by-number sessions in SQLite.
//
// A saved session is self-contained: the original image bytes, the
// conversion options and result, and the filled cells all travel together,
// so loading one restores the workspace exactly, including the ability to
// reconvert from the original bytes.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ironsheep/paintbynum-mcp/internal/convert"
	"github.com/ironsheep/paintbynum-mcp/internal/fill"
	"github.com/ironsheep/paintbynum-mcp/internal/session"
)

// ErrNotFound means no saved session has the requested name.
var ErrNotFound = errors.New("session not found")

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	name       TEXT PRIMARY KEY,
	source     BLOB NOT NULL,
	config     TEXT NOT NULL,
	result     TEXT NOT NULL,
	fills      TEXT NOT NULL,
	grid       TEXT NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	cells      INTEGER NOT NULL,
	colors     INTEGER NOT NULL,
	filled     INTEGER NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);
`

// The pragmas applied to every connection: WAL for concurrent readers, a
// generous busy timeout instead of immediate SQLITE_BUSY, and NORMAL
// synchronous, which is durable enough under WAL.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// Store is a handle on the session database.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens (creating if needed) the session database at path, applies
// pragmas and ensures the schema exists. Parent directories are created.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &Store{db: db, log: logger}, nil
}

// OpenMemory opens an in-memory store for testing. MaxOpenConns is pinned
// to 1 because every connection to ":memory:" is its own database. Closing
// is registered as a test cleanup.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:", slog.Default())
	if err != nil {
		t.Fatalf("store.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the session state under its name, inserting or replacing.
// The first save sets created_at; later saves under the same name only
// advance updated_at.
func (s *Store) Save(st session.State) error {
	if st.Name == "" {
		return errors.New("store: session name is empty")
	}
	if st.Result == nil {
		return errors.New("store: state has no conversion result")
	}

	cfgJSON, err := json.Marshal(st.Config)
	if err != nil {
		return fmt.Errorf("store: marshal config: %w", err)
	}
	resJSON, err := json.Marshal(st.Result)
	if err != nil {
		return fmt.Errorf("store: marshal result: %w", err)
	}
	fills := st.Fills
	if fills == nil {
		fills = []fill.Key{}
	}
	fillsJSON, err := json.Marshal(fills)
	if err != nil {
		return fmt.Errorf("store: marshal fills: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`
		INSERT INTO sessions
			(name, source, config, result, fills, grid, width, height,
			 cells, colors, filled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			source = excluded.source,
			config = excluded.config,
			result = excluded.result,
			fills = excluded.fills,
			grid = excluded.grid,
			width = excluded.width,
			height = excluded.height,
			cells = excluded.cells,
			colors = excluded.colors,
			filled = excluded.filled,
			updated_at = excluded.updated_at`,
		st.Name, st.Source, string(cfgJSON), string(resJSON), string(fillsJSON),
		string(st.Result.GridType), st.Result.Width, st.Result.Height,
		st.Result.CellCount(), st.Result.Palette.Len(), len(fills),
		now, now)
	if err != nil {
		return fmt.Errorf("store: save %q: %w", st.Name, err)
	}

	s.log.Debug("session saved", "name", st.Name, "cells", st.Result.CellCount(), "fills", len(fills))
	return nil
}

// Load reads a saved session back into a restorable state.
func (s *Store) Load(name string) (session.State, error) {
	var (
		st        session.State
		cfgJSON   string
		resJSON   string
		fillsJSON string
	)
	err := s.db.QueryRow(
		`SELECT name, source, config, result, fills FROM sessions WHERE name = ?`,
		name).Scan(&st.Name, &st.Source, &cfgJSON, &resJSON, &fillsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return session.State{}, ErrNotFound
	}
	if err != nil {
		return session.State{}, fmt.Errorf("store: load %q: %w", name, err)
	}

	if err := json.Unmarshal([]byte(cfgJSON), &st.Config); err != nil {
		return session.State{}, fmt.Errorf("store: decode config of %q: %w", name, err)
	}
	st.Result = &convert.Result{}
	if err := json.Unmarshal([]byte(resJSON), st.Result); err != nil {
		return session.State{}, fmt.Errorf("store: decode result of %q: %w", name, err)
	}
	if err := json.Unmarshal([]byte(fillsJSON), &st.Fills); err != nil {
		return session.State{}, fmt.Errorf("store: decode fills of %q: %w", name, err)
	}
	if err := st.Result.Validate(); err != nil {
		return session.State{}, fmt.Errorf("store: stored result of %q is invalid: %w", name, err)
	}
	return st, nil
}

// Info summarizes one saved session without decoding its full result.
type Info struct {
	Name      string    `json:"name"`
	Grid      string    `json:"grid"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Cells     int       `json:"cells"`
	Colors    int       `json:"colors"`
	Filled    int       `json:"filled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List returns summaries of all saved sessions ordered by name.
func (s *Store) List() ([]Info, error) {
	rows, err := s.db.Query(`
		SELECT name, grid, width, height, cells, colors, filled,
		       created_at, updated_at
		FROM sessions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var (
			info    Info
			created string
			updated string
		)
		if err := rows.Scan(&info.Name, &info.Grid, &info.Width, &info.Height,
			&info.Cells, &info.Colors, &info.Filled, &created, &updated); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		if info.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("store: bad created_at for %q: %w", info.Name, err)
		}
		if info.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
			return nil, fmt.Errorf("store: bad updated_at for %q: %w", info.Name, err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// Delete removes a saved session.
func (s *Store) Delete(name string) error {
	res, err := s.db.Exec(`DELETE FROM sessions WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete %q: %w", name, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Debug("session deleted", "name", name)
	return nil
}
