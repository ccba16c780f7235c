package generate

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/ringrand/internal/platform/id"
	"github.com/louisbranch/ringrand/internal/prng"
	"github.com/louisbranch/ringrand/internal/prng/dump"
	"github.com/louisbranch/ringrand/internal/storage"
)

const archivePageSize = 256

// archiveSink appends each transcript line to one archived run.
type archiveSink struct {
	ctx     context.Context
	archive storage.Archive
	runID   string
	seq     uint64
}

func newArchiveSink(ctx context.Context, archive storage.Archive, cfg Config) (*archiveSink, error) {
	runID, err := id.NewID()
	if err != nil {
		return nil, err
	}
	run := storage.Run{
		ID:       runID,
		Seed:     cfg.Seed,
		LengthU8: cfg.LengthU8,
		Requests: FormatRequests(cfg.Requests),
	}
	if err := archive.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("archive run: %w", err)
	}
	return &archiveSink{ctx: ctx, archive: archive, runID: runID}, nil
}

func (s *archiveSink) Put(key, value string) error {
	s.seq++
	line := storage.Line{RunID: s.runID, Seq: s.seq, Key: key, Value: value}
	if err := s.archive.AppendLine(s.ctx, line); err != nil {
		return fmt.Errorf("archive line %d: %w", s.seq, err)
	}
	return nil
}

// Transcript returns every archived line of a run in emission order.
func Transcript(ctx context.Context, archive storage.LineStore, runID string) ([]dump.Line, error) {
	if archive == nil {
		return nil, errors.New("archive is required")
	}
	var lines []dump.Line
	token := ""
	for {
		page, err := archive.ListLines(ctx, runID, archivePageSize, token)
		if err != nil {
			return nil, fmt.Errorf("list lines: %w", err)
		}
		for _, line := range page.Lines {
			lines = append(lines, dump.Line{Key: line.Key, Value: line.Value})
		}
		if page.NextPageToken == "" {
			return lines, nil
		}
		token = page.NextPageToken
	}
}

// ResumeRun rebuilds the device an archived run ended with.
func ResumeRun(ctx context.Context, archive storage.Archive, runID string) (*prng.Device, error) {
	if archive == nil {
		return nil, errors.New("archive is required")
	}
	if _, err := archive.GetRun(ctx, runID); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	lines, err := Transcript(ctx, archive, runID)
	if err != nil {
		return nil, err
	}
	rec, err := dump.LastRecord(lines)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return prng.Resume(rec)
}
