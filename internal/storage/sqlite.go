// Package storage keeps the exchange audit log in a local SQLite database.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite database holding the exchange log.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) a SQLite database in dataDir and runs pending
// migrations. Pass ":memory:" as dataDir for an in-memory database (used
// by tests).
func Open(dataDir string) (*Store, error) {
	var dsn string
	if dataDir == ":memory:" {
		dsn = ":memory:"
	} else {
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = filepath.Join(dataDir, "wikiart.db")
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	// Limit to single connection to avoid "database is locked" errors.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting journal mode: %w", err)
	}

	s := &Store{db: db, logger: slog.Default()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate reads embedded SQL migration files and applies any that haven't
// been run yet.
func (s *Store) migrate() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		version, err := parseMigrationVersion(entry.Name())
		if err != nil {
			return err
		}

		var exists int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_version WHERE version = ?", version).Scan(&exists); err != nil {
			return fmt.Errorf("checking migration %d: %w", version, err)
		}
		if exists > 0 {
			continue
		}

		content, err := migrationsFS.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		tx, err := s.db.Begin()
		if err != nil {
			return fmt.Errorf("beginning transaction for migration %d: %w", version, err)
		}
		if _, err := tx.Exec(string(content)); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}

	return nil
}

func parseMigrationVersion(filename string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(filename, "%d_", &version); err != nil {
		return 0, fmt.Errorf("parsing migration version from %q: %w", filename, err)
	}
	return version, nil
}

// SaveExchange inserts an exchange. A zero CreatedAt defaults to now.
func (s *Store) SaveExchange(e Exchange) error {
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	artworks := e.Artworks
	if artworks == "" {
		artworks = "[]"
	}
	_, err := s.db.Exec(`
		INSERT INTO exchanges (id, created_at, question, answer, status, artworks)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, createdAt.Format(time.RFC3339), e.Question, e.Answer, e.Status, artworks,
	)
	return err
}

// GetExchange returns the exchange with the given ID. A unique ID prefix
// also resolves, so the shortened IDs shown by list output can be pasted
// back; an ambiguous prefix is an error.
func (s *Store) GetExchange(id string) (Exchange, error) {
	if id == "" {
		return Exchange{}, ErrNotFound
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, question, answer, status, artworks
		FROM exchanges WHERE id = ? OR id LIKE ? LIMIT 2`, id, id+"%")
	if err != nil {
		return Exchange{}, err
	}
	defer rows.Close()

	var matches []Exchange
	for rows.Next() {
		var e Exchange
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Question, &e.Answer, &e.Status, &e.Artworks); err != nil {
			return Exchange{}, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return Exchange{}, fmt.Errorf("parsing created_at: %w", err)
		}
		e.CreatedAt = t
		matches = append(matches, e)
	}
	if err := rows.Err(); err != nil {
		return Exchange{}, err
	}

	switch len(matches) {
	case 0:
		return Exchange{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return Exchange{}, fmt.Errorf("exchange id %q is ambiguous", id)
	}
}

// ListExchanges returns the most recent exchanges, newest first.
func (s *Store) ListExchanges(limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, question, answer, status, artworks
		FROM exchanges ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exchanges []Exchange
	for rows.Next() {
		var e Exchange
		var createdAt string
		if err := rows.Scan(&e.ID, &createdAt, &e.Question, &e.Answer, &e.Status, &e.Artworks); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at for %s: %w", e.ID, err)
		}
		e.CreatedAt = t
		exchanges = append(exchanges, e)
	}
	return exchanges, rows.Err()
}

// CountExchanges returns the number of logged exchanges.
func (s *Store) CountExchanges() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM exchanges").Scan(&count)
	return count, err
}

// Record satisfies the conversation manager's Recorder. It is
// best-effort: a failed insert is logged and otherwise ignored so the
// audit log can never break a conversation.
func (s *Store) Record(_ context.Context, question, answer, status string, artworks []string) {
	if artworks == nil {
		artworks = []string{}
	}
	titles, err := json.Marshal(artworks)
	if err != nil {
		titles = []byte("[]")
	}
	e := Exchange{
		ID:       uuid.New().String(),
		Question: question,
		Answer:   answer,
		Status:   status,
		Artworks: string(titles),
	}
	if err := s.SaveExchange(e); err != nil {
		s.logger.Warn("failed to record exchange", "error", err)
	}
}
