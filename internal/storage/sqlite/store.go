// Package sqlite provides a SQLite-backed run archive.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/ringrand/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/ringrand/internal/storage"
	"github.com/louisbranch/ringrand/internal/storage/cursor"
	"github.com/louisbranch/ringrand/internal/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists runs and their transcripts in SQLite.
type Store struct {
	sqlDB *sql.DB
}

var _ storage.Archive = (*Store)(nil)

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite archive and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(context.Background(), sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// DB exposes the underlying SQL handle.
func (s *Store) DB() *sql.DB {
	if s == nil {
		return nil
	}
	return s.sqlDB
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateRun inserts one run record.
func (s *Store) CreateRun(ctx context.Context, run storage.Run) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	runID := strings.TrimSpace(run.ID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if run.LengthU8 <= 0 {
		return fmt.Errorf("length_u8 must be greater than zero")
	}
	createdAt := run.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	seed := run.Seed
	if seed == nil {
		seed = []byte{}
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO runs (id, seed, length_u8, requests, created_at) VALUES (?, ?, ?, ?, ?)`,
		runID,
		seed,
		run.LengthU8,
		strings.TrimSpace(run.Requests),
		toMillis(createdAt),
	)
	if err != nil {
		if isConstraintViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create run: %w", err)
	}
	return nil
}

// GetRun returns one run by ID.
func (s *Store) GetRun(ctx context.Context, id string) (storage.Run, error) {
	if err := ctx.Err(); err != nil {
		return storage.Run{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Run{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Run{}, fmt.Errorf("run id is required")
	}

	var run storage.Run
	var createdAt int64
	err := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, seed, length_u8, requests, created_at FROM runs WHERE id = ?`,
		id,
	).Scan(&run.ID, &run.Seed, &run.LengthU8, &run.Requests, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Run{}, storage.ErrNotFound
		}
		return storage.Run{}, fmt.Errorf("get run: %w", err)
	}
	run.CreatedAt = fromMillis(createdAt)
	return run, nil
}

// AppendLine stores one transcript line. The run must exist.
func (s *Store) AppendLine(ctx context.Context, line storage.Line) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	runID := strings.TrimSpace(line.RunID)
	if runID == "" {
		return fmt.Errorf("run id is required")
	}
	if line.Seq == 0 {
		return fmt.Errorf("line seq must be greater than zero")
	}
	if strings.TrimSpace(line.Key) == "" {
		return fmt.Errorf("line key is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO run_lines (run_id, seq, key, value) VALUES (?, ?, ?, ?)`,
		runID,
		int64(line.Seq),
		line.Key,
		line.Value,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return storage.ErrNotFound
		}
		if isConstraintViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append line: %w", err)
	}
	return nil
}

// ListLines returns one page of a run transcript in emission order.
func (s *Store) ListLines(ctx context.Context, runID string, pageSize int, pageToken string) (storage.LinePage, error) {
	if err := ctx.Err(); err != nil {
		return storage.LinePage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.LinePage{}, fmt.Errorf("storage is not configured")
	}
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return storage.LinePage{}, fmt.Errorf("run id is required")
	}
	if pageSize <= 0 {
		return storage.LinePage{}, fmt.Errorf("page size must be greater than zero")
	}

	var after uint64
	if token := strings.TrimSpace(pageToken); token != "" {
		c, err := cursor.Decode(token, runID)
		if err != nil {
			return storage.LinePage{}, fmt.Errorf("invalid page token: %w", err)
		}
		after = c.Seq
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT run_id, seq, key, value
		   FROM run_lines
		  WHERE run_id = ? AND seq > ?
		  ORDER BY seq ASC
		  LIMIT ?`,
		runID,
		int64(after),
		pageSize+1,
	)
	if err != nil {
		return storage.LinePage{}, fmt.Errorf("list lines: %w", err)
	}
	defer rows.Close()

	page := storage.LinePage{Lines: make([]storage.Line, 0, pageSize)}
	for rows.Next() {
		var line storage.Line
		var seq int64
		if err := rows.Scan(&line.RunID, &seq, &line.Key, &line.Value); err != nil {
			return storage.LinePage{}, fmt.Errorf("scan line: %w", err)
		}
		line.Seq = uint64(seq)
		page.Lines = append(page.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return storage.LinePage{}, fmt.Errorf("iterate lines: %w", err)
	}

	if len(page.Lines) > pageSize {
		page.Lines = page.Lines[:pageSize]
		token, err := cursor.Encode(cursor.New(runID, page.Lines[pageSize-1].Seq))
		if err != nil {
			return storage.LinePage{}, fmt.Errorf("encode page token: %w", err)
		}
		page.NextPageToken = token
	}
	return page, nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return true
	default:
		return false
	}
}

func isForeignKeyViolation(err error) bool {
	var sqliteErr *msqlite.Error
	return errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
}
