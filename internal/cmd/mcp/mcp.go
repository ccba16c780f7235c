// Package mcp parses MCP command flags and serves the tools on stdio.
package mcp

import (
	"context"
	"flag"

	mcpserver "github.com/louisbranch/ringrand/internal/mcp"
	entrypoint "github.com/louisbranch/ringrand/internal/platform/cmd"
)

// Config holds MCP command configuration.
type Config struct {
	ArchivePath string `env:"ARCHIVE_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.StringVar(&cfg.ArchivePath, "archive", "", "SQLite archive path (empty disables archiving, default $RINGRAND_ARCHIVE_PATH)")
	if err := entrypoint.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		return mcpserver.Run(ctx, mcpserver.Config{ArchivePath: cfg.ArchivePath})
	})
}
