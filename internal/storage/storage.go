package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a duplicate run or line.
var ErrAlreadyExists = errors.New("record already exists")

// Run describes one archived generator run.
type Run struct {
	ID        string
	Seed      []byte
	LengthU8  int
	Requests  string
	CreatedAt time.Time
}

// Line is one emitted key:value line, numbered from 1 within its run.
type Line struct {
	RunID string
	Seq   uint64
	Key   string
	Value string
}

// LinePage is one page of run lines.
type LinePage struct {
	Lines         []Line
	NextPageToken string
}

// RunStore persists run metadata.
type RunStore interface {
	CreateRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, error)
}

// LineStore persists run transcripts.
type LineStore interface {
	AppendLine(ctx context.Context, line Line) error
	ListLines(ctx context.Context, runID string, pageSize int, pageToken string) (LinePage, error)
}

// Archive is the full run archive.
type Archive interface {
	RunStore
	LineStore
}
