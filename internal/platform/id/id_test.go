package id_test

import (
	"context"
	"encoding/base32"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/louisbranch/ringrand/internal/platform/id"
	"github.com/louisbranch/ringrand/internal/storage"
	"github.com/louisbranch/ringrand/internal/storage/sqlite"
)

func decodeRunID(t *testing.T, runID string) uuid.UUID {
	t.Helper()
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(runID))
	if err != nil {
		t.Fatalf("decode run id %q: %v", runID, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		t.Fatalf("run id %q is not a uuid: %v", runID, err)
	}
	return u
}

func TestRunIDIsLowerBase32UUIDv4(t *testing.T) {
	runID, err := id.NewID()
	if err != nil {
		t.Fatalf("new run id: %v", err)
	}
	if len(runID) != 26 {
		t.Fatalf("run id %q has %d chars, want 26", runID, len(runID))
	}
	if strings.ToLower(runID) != runID || strings.ContainsRune(runID, '=') {
		t.Fatalf("run id %q is not unpadded lower-case base32", runID)
	}

	u := decodeRunID(t, runID)
	if u.Version() != 4 {
		t.Fatalf("uuid version = %d, want 4", u.Version())
	}
	if u.Variant() != uuid.RFC4122 {
		t.Fatalf("uuid variant = %v, want %v", u.Variant(), uuid.RFC4122)
	}
}

func TestRunIDsRoundTripThroughArchive(t *testing.T) {
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	ctx := context.Background()
	ids := make([]string, 0, 16)
	for i := range 16 {
		runID, err := id.NewID()
		if err != nil {
			t.Fatalf("new run id: %v", err)
		}
		run := storage.Run{ID: runID, Seed: []byte{byte(i)}, LengthU8: 32, Requests: "u64:1"}
		if err := store.CreateRun(ctx, run); err != nil {
			t.Fatalf("create run %s: %v", runID, err)
		}
		ids = append(ids, runID)
	}

	for i, runID := range ids {
		got, err := store.GetRun(ctx, runID)
		if err != nil {
			t.Fatalf("get run %s: %v", runID, err)
		}
		if got.ID != runID {
			t.Fatalf("stored id = %q, want %q", got.ID, runID)
		}
		if len(got.Seed) != 1 || got.Seed[0] != byte(i) {
			t.Fatalf("run %s seed = %X, want %02X", runID, got.Seed, i)
		}
	}
}
