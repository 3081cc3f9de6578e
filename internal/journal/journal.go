package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status describes the terminal state of one processed file.
type Status string

const (
	// StatusDone means a subtitle file was written.
	StatusDone Status = "done"
	// StatusSkipped means the output already existed and overwrite was off.
	StatusSkipped Status = "skipped"
	// StatusReview means the failure is caller-fixable (bad path, bad
	// format, unknown provider).
	StatusReview Status = "review"
	// StatusFailed means a backend or I/O failure.
	StatusFailed Status = "failed"
)

// Entry is one journal row.
type Entry struct {
	ID        string
	RunID     string
	Input     string
	Output    string
	Status    Status
	Language  string
	Detail    string
	CreatedAt time.Time
}

// Store manages journal persistence backed by SQLite. One Store corresponds
// to one run; every entry it records carries the same run ID.
type Store struct {
	db    *sql.DB
	path  string
	lock  *flock.Flock
	runID string
}

// ErrLocked indicates another whisparr process holds the journal lock.
var ErrLocked = errors.New("journal is locked by another whisparr process")

// Open initializes or connects to the journal database at path, creating
// parent directories as needed. The sidecar lock file is acquired without
// blocking; a concurrent holder surfaces as ErrLocked.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("journal path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}

	lock := flock.New(path + ".lock")
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire journal lock: %w", err)
	}
	if !acquired {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open journal db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path, lock: lock, runID: uuid.NewString()}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close releases the database connection and the run lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); unlockErr != nil && err == nil {
			err = unlockErr
		}
		s.lock = nil
	}
	return err
}

// Path returns the on-disk location backing the journal.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// RunID returns the identifier stamped onto every entry this store records.
func (s *Store) RunID() string {
	if s == nil {
		return ""
	}
	return s.runID
}

// Record inserts one entry for a processed file. The entry ID and run ID are
// assigned by the store.
func (s *Store) Record(ctx context.Context, entry Entry) (Entry, error) {
	if s == nil || s.db == nil {
		return Entry{}, errors.New("journal store not open")
	}
	entry.ID = uuid.NewString()
	entry.RunID = s.runID
	entry.CreatedAt = time.Now().UTC()

	err := s.execWithRetry(ctx,
		`INSERT INTO entries (id, run_id, input, output, status, language, detail, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.RunID,
		entry.Input,
		entry.Output,
		string(entry.Status),
		entry.Language,
		entry.Detail,
		entry.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record journal entry: %w", err)
	}
	return entry, nil
}

// Recent returns the newest entries, most recent first. A non-positive limit
// defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("journal store not open")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, input, output, status, language, detail, created_at
         FROM entries ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var status, createdAt string
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.Input, &entry.Output,
			&status, &entry.Language, &entry.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.Status = Status(status)
		if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = parsed
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}
