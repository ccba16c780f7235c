package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Archive string `env:"CMD_TEST_ARCHIVE" envDefault:"runs.db"`
	Bytes   int    `env:"CMD_TEST_BYTES" envDefault:"32"`
}

func TestParseConfigThenArgsReadsEnvAndFlags(t *testing.T) {
	t.Setenv("RINGRAND_CMD_TEST_ARCHIVE", "env.db")
	t.Setenv("RINGRAND_CMD_TEST_BYTES", "64")

	cfg := testConfig{}
	fs := flag.NewFlagSet("configargs", flag.ContinueOnError)
	if err := ParseConfig(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	fs.StringVar(&cfg.Archive, "archive", cfg.Archive, "archive")
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "bytes")

	if err := ParseArgs(fs, []string{"-archive", "flag.db"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if cfg.Archive != "flag.db" {
		t.Fatalf("expected flag archive, got %q", cfg.Archive)
	}
	if cfg.Bytes != 64 {
		t.Fatalf("expected env bytes, got %d", cfg.Bytes)
	}
}

func TestParseConfigFromArgsDefaults(t *testing.T) {
	cfg := testConfig{}
	fs := flag.NewFlagSet("defaults", flag.ContinueOnError)
	if err := ParseConfigFromArgs(&cfg, fs, nil); err != nil {
		t.Fatalf("parse config and args: %v", err)
	}
	if cfg.Archive != "runs.db" || cfg.Bytes != 32 {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestParseConfigFromArgsKeepsEnvUnlessFlagged(t *testing.T) {
	t.Setenv("RINGRAND_CMD_TEST_ARCHIVE", "env.db")
	t.Setenv("RINGRAND_CMD_TEST_BYTES", "64")

	tests := []struct {
		name        string
		args        []string
		wantArchive string
		wantBytes   int
	}{
		{name: "no flags", args: nil, wantArchive: "env.db", wantBytes: 64},
		{name: "archive flag", args: []string{"-archive", "flag.db"}, wantArchive: "flag.db", wantBytes: 64},
		{name: "both flags", args: []string{"-archive", "flag.db", "-bytes", "96"}, wantArchive: "flag.db", wantBytes: 96},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg testConfig
			fs := flag.NewFlagSet("bound", flag.ContinueOnError)
			fs.StringVar(&cfg.Archive, "archive", "", "archive")
			fs.IntVar(&cfg.Bytes, "bytes", 0, "bytes")
			if err := ParseConfigFromArgs(&cfg, fs, tt.args); err != nil {
				t.Fatalf("parse config and args: %v", err)
			}
			if cfg.Archive != tt.wantArchive || cfg.Bytes != tt.wantBytes {
				t.Fatalf("got %+v, want archive %q bytes %d", cfg, tt.wantArchive, tt.wantBytes)
			}
		})
	}
}

func TestParseConfigRejectsNilTarget(t *testing.T) {
	if err := ParseConfig[testConfig](nil); err == nil {
		t.Fatal("expected nil target error")
	}
}

func TestParseArgsRejectsNilParser(t *testing.T) {
	if err := ParseArgs(nil, []string{}); err == nil {
		t.Fatal("expected parse args to reject nil parser")
	}
}

func TestRunWithTelemetryValidatesInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", func(context.Context) error { return nil }); err == nil {
		t.Fatal("expected service name error")
	}
	if err := RunWithTelemetry(context.Background(), ServicePRNG, nil); err == nil {
		t.Fatal("expected run function error")
	}
}

func TestRunWithTelemetryReturnsRunError(t *testing.T) {
	t.Setenv("RINGRAND_OTEL_ENDPOINT", "")
	want := errors.New("boom")

	called := false
	err := RunWithTelemetry(context.Background(), ServicePRNG, func(context.Context) error {
		called = true
		return want
	})
	if !called {
		t.Fatal("expected run function to be called")
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected run error, got %v", err)
	}
}
