// Package prng parses prng command arguments and writes one transcript file.
package prng

import (
	"context"
	"fmt"
	"log"
	"strings"

	entrypoint "github.com/louisbranch/ringrand/internal/platform/cmd"
	"github.com/louisbranch/ringrand/internal/storage"
	"github.com/louisbranch/ringrand/internal/storage/sqlite"
	"github.com/louisbranch/ringrand/internal/tools/generate"
)

// Env holds RINGRAND_* settings for the prng command.
type Env struct {
	// ArchivePath enables the SQLite run archive when set.
	ArchivePath string `env:"ARCHIVE_PATH"`
}

// Config holds prng command configuration.
type Config struct {
	Env
	Generate generate.Config
}

// ParseConfig reads the environment and then the key=value arguments.
func ParseConfig(args []string) (Config, error) {
	var env Env
	if err := entrypoint.ParseConfig(&env); err != nil {
		return Config{}, err
	}
	gen, err := generate.ParseConfig(args)
	if err != nil {
		return Config{}, err
	}
	return Config{Env: env, Generate: gen}, nil
}

// Run writes the transcript, archiving it when an archive path is set.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServicePRNG, func(ctx context.Context) error {
		var archive storage.Archive
		if path := strings.TrimSpace(cfg.ArchivePath); path != "" {
			store, err := sqlite.Open(path)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					log.Printf("close archive: %v", err)
				}
			}()
			archive = store
		}
		return generate.WriteFile(ctx, cfg.Generate, archive)
	})
}
