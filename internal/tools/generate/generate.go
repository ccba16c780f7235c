package generate

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/louisbranch/ringrand/internal/platform/otel"
	"github.com/louisbranch/ringrand/internal/prng"
	"github.com/louisbranch/ringrand/internal/prng/dump"
	"github.com/louisbranch/ringrand/internal/storage"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Result summarizes one completed run.
type Result struct {
	// RunID is the archive identifier, empty when no archive was used.
	RunID   string
	Batches int
	Values  int
}

// Run builds a device from cfg and writes its transcript to out: the initial
// state block, then for each request a value line followed by a state block.
// When archive is non-nil every line is mirrored into it.
func Run(ctx context.Context, cfg Config, out io.Writer, archive storage.Archive) (Result, error) {
	if out == nil {
		return Result{}, errors.New("output is required")
	}
	dev, err := prng.New(cfg.Seed, cfg.LengthU8)
	if err != nil {
		return Result{}, fmt.Errorf("new device: %w", err)
	}

	var result Result
	var sink dump.Sink = dump.NewTextSink(out)
	if archive != nil {
		as, err := newArchiveSink(ctx, archive, cfg)
		if err != nil {
			return Result{}, err
		}
		result.RunID = as.runID
		sink = dump.MultiSink(sink, as)
	}

	if err := dev.Report(sink); err != nil {
		return result, fmt.Errorf("write initial state: %w", err)
	}
	for i, req := range cfg.Requests {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := runBatch(ctx, dev, req, sink); err != nil {
			return result, fmt.Errorf("batch %d (%s): %w", i+1, req, err)
		}
		result.Batches++
		result.Values += req.Length
	}
	return result, nil
}

func runBatch(ctx context.Context, dev *prng.Device, req Request, sink dump.Sink) error {
	_, span := otel.Tracer().Start(ctx, "generate.batch")
	defer span.End()
	span.SetAttributes(
		attribute.String("prng.kind", string(req.Kind)),
		attribute.Int("prng.length", req.Length),
	)

	var value string
	switch req.Kind {
	case KindU64:
		value = dump.JoinWords(dev.Uint64s(req.Length))
	case KindF64:
		value = dump.JoinFloats(dev.Float64s(req.Length))
	default:
		err := fmt.Errorf("%w: %q", ErrUnknownType, req.Kind)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := sink.Put(req.Kind.Key(), value); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := dev.Report(sink); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// WriteFile creates or truncates cfg.FilePath and writes the transcript to it.
// A failure part way through leaves the partial file in place.
func WriteFile(ctx context.Context, cfg Config, archive storage.Archive) (err error) {
	f, err := os.Create(cfg.FilePath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	result, err := Run(ctx, cfg, w, archive)
	if err != nil {
		_ = w.Flush()
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	log.Printf("wrote %s values in %d batches to %s", humanize.Comma(int64(result.Values)), result.Batches, cfg.FilePath)
	if result.RunID != "" {
		log.Printf("archived run %s", result.RunID)
	}
	return nil
}
