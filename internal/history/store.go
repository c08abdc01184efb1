// Package history records completed runs in a SQLite store under
// .archview/. Each row keeps the run's summary counts and the rendered
// diagram text, gzip-compressed.
package history

import (
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	archerrors "archview/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    created_at    TEXT NOT NULL,
    server_files  INTEGER NOT NULL,
    client_files  INTEGER NOT NULL,
    components    INTEGER NOT NULL,
    interactions  INTEGER NOT NULL,
    collisions    INTEGER NOT NULL,
    output_path   TEXT NOT NULL,
    diagram_gz    BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one recorded pipeline run.
type Run struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"createdAt"`
	ServerFiles  int       `json:"serverFiles"`
	ClientFiles  int       `json:"clientFiles"`
	Components   int       `json:"components"`
	Interactions int       `json:"interactions"`
	Collisions   int       `json:"collisions"`
	OutputPath   string    `json:"outputPath"`
}

// Store is the run history database.
type Store struct {
	conn   *sql.DB
	logger *slog.Logger
	path   string
}

// Open opens or creates the history database at dir/archview.db.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, archerrors.New(archerrors.HistoryUnavailable, "creating history directory", err)
	}
	dbPath := filepath.Join(dir, "archview.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, archerrors.New(archerrors.HistoryUnavailable, "opening history database", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, archerrors.New(archerrors.HistoryUnavailable, "setting pragma", err)
		}
	}

	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, archerrors.New(archerrors.HistoryUnavailable, "initializing schema", err)
	}

	logger.Debug("history store opened", "path", dbPath)
	return &Store{conn: conn, logger: logger, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Record stores one completed run and returns its generated id.
func (s *Store) Record(run Run, diagram string) (string, error) {
	id := run.ID
	if id == "" {
		id = uuid.NewString()
	}
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	blob, err := compress(diagram)
	if err != nil {
		return "", fmt.Errorf("compressing diagram: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO runs (id, created_at, server_files, client_files, components, interactions, collisions, output_path, diagram_gz)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, createdAt.Format(time.RFC3339), run.ServerFiles, run.ClientFiles,
		run.Components, run.Interactions, run.Collisions, run.OutputPath, blob)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	s.logger.Debug("run recorded", "id", id)
	return id, nil
}

// List returns the most recent runs, newest first, without diagram blobs.
func (s *Store) List(limit int) ([]Run, error) {
	rows, err := s.conn.Query(`
		SELECT id, created_at, server_files, client_files, components, interactions, collisions, output_path
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt string
		if err := rows.Scan(&r.ID, &createdAt, &r.ServerFiles, &r.ClientFiles,
			&r.Components, &r.Interactions, &r.Collisions, &r.OutputPath); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Diagram returns the decompressed diagram text of a stored run. The id may
// be any unambiguous prefix of the full run id; a prefix matching more than
// one run is rejected rather than resolved arbitrarily.
func (s *Store) Diagram(id string) (string, error) {
	rows, err := s.conn.Query(`
		SELECT id, diagram_gz FROM runs WHERE id = ? OR id LIKE ? || '%'
		ORDER BY id = ? DESC LIMIT 2
	`, id, id, id)
	if err != nil {
		return "", fmt.Errorf("querying run %s: %w", id, err)
	}
	defer rows.Close()

	var matches []struct {
		id   string
		blob []byte
	}
	for rows.Next() {
		var m struct {
			id   string
			blob []byte
		}
		if err := rows.Scan(&m.id, &m.blob); err != nil {
			return "", err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", archerrors.New(archerrors.RunNotFound, "no run with id "+id, nil)
	case 1:
		return decompress(matches[0].blob)
	}
	for _, m := range matches {
		if m.id == id {
			return decompress(m.blob)
		}
	}
	return "", archerrors.New(archerrors.RunAmbiguous, "run id prefix "+id+" matches multiple runs", nil)
}

func compress(text string) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(text)); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(blob []byte) (string, error) {
	zr, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return "", fmt.Errorf("reading compressed diagram: %w", err)
	}
	defer zr.Close()
	text, err := io.ReadAll(zr)
	if err != nil {
		return "", err
	}
	return string(text), nil
}
