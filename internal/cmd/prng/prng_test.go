package prng

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/ringrand/internal/prng/dump"
	"github.com/louisbranch/ringrand/internal/storage/sqlite"
	"github.com/louisbranch/ringrand/internal/tools/generate"
)

func args(path string) []string {
	return []string{
		"file_path=" + path,
		"seed_u8=00,01,02,03,04,05,06,07,08,09,0A,0B,0C,0D,0E,0F,10,11,12,13,14,15,16,17,18,19,1A,1B,1C,1D,1E,1F",
		"length_u8=32",
		"types_of_arr=u64:3",
	}
}

func TestParseConfigReadsArchivePath(t *testing.T) {
	t.Setenv("RINGRAND_ARCHIVE_PATH", "/tmp/archive.db")

	cfg, err := ParseConfig(args("out.txt"))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.ArchivePath != "/tmp/archive.db" {
		t.Fatalf("archive path = %q", cfg.ArchivePath)
	}
	if cfg.Generate.FilePath != "out.txt" || cfg.Generate.LengthU8 != 32 {
		t.Fatalf("generate config = %+v", cfg.Generate)
	}
}

func TestParseConfigRejectsBadArgs(t *testing.T) {
	t.Setenv("RINGRAND_ARCHIVE_PATH", "")

	_, err := ParseConfig([]string{"file_path=out.txt"})
	if !errors.Is(err, generate.ErrMissingArg) {
		t.Fatalf("error = %v, want %v", err, generate.ErrMissingArg)
	}
}

func TestRunWritesFile(t *testing.T) {
	t.Setenv("RINGRAND_OTEL_ENDPOINT", "")

	path := filepath.Join(t.TempDir(), "out.txt")
	cfg, err := ParseConfig(args(path))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.ArchivePath = ""
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	lines, err := dump.ReadLines(f)
	if err != nil {
		t.Fatalf("read lines: %v", err)
	}
	if len(lines) != 19 {
		t.Fatalf("lines = %d, want 19", len(lines))
	}
	if lines[9].Key != dump.KeyVecU64 || len(strings.Split(lines[9].Value, ",")) != 3 {
		t.Fatalf("batch line = %+v", lines[9])
	}
}

func TestRunArchives(t *testing.T) {
	t.Setenv("RINGRAND_OTEL_ENDPOINT", "")

	dir := t.TempDir()
	cfg, err := ParseConfig(args(filepath.Join(dir, "out.txt")))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.ArchivePath = filepath.Join(dir, "archive.db")
	if err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := sqlite.Open(cfg.ArchivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer store.Close()
	var count int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM run_lines`).Scan(&count); err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if count != 19 {
		t.Fatalf("archived lines = %d, want 19", count)
	}
}

func TestRunFailsOnBadArchivePath(t *testing.T) {
	t.Setenv("RINGRAND_OTEL_ENDPOINT", "")

	dir := t.TempDir()
	cfg, err := ParseConfig(args(filepath.Join(dir, "out.txt")))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.ArchivePath = filepath.Join(dir, "missing", "archive.db")
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected archive open error")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.txt")); !os.IsNotExist(err) {
		t.Fatalf("output file should not exist, stat err = %v", err)
	}
}
