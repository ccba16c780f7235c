// Package mcp exposes the generator as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/ringrand/internal/storage"
	"github.com/louisbranch/ringrand/internal/storage/sqlite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// serverName identifies this MCP server to clients.
	serverName = "ringrand MCP"
	// serverVersion identifies the MCP server version.
	serverVersion = "0.1.0"
)

// Config configures the MCP server.
type Config struct {
	// ArchivePath enables the SQLite run archive and the transcript tool.
	ArchivePath string `env:"ARCHIVE_PATH"`
}

// Server hosts the MCP server.
type Server struct {
	mcpServer *mcp.Server
	store     *sqlite.Store
}

// New creates a configured MCP server. The archive is opened when
// cfg.ArchivePath is set.
func New(cfg Config) (*Server, error) {
	var store *sqlite.Store
	if path := strings.TrimSpace(cfg.ArchivePath); path != "" {
		var err error
		store, err = sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open archive: %w", err)
		}
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	var archive storage.Archive
	if store != nil {
		archive = store
	}
	registerTools(mcpServer, archive)

	return &Server{mcpServer: mcpServer, store: store}, nil
}

// Close releases the archive, if any.
func (s *Server) Close() error {
	if s == nil || s.store == nil {
		return nil
	}
	return s.store.Close()
}

// Run creates and serves the MCP server on stdio until the context ends.
func Run(ctx context.Context, cfg Config) error {
	server, err := New(cfg)
	if err != nil {
		return err
	}
	return server.serveWithTransport(ctx, &mcp.StdioTransport{})
}

func (s *Server) serveWithTransport(ctx context.Context, transport mcp.Transport) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	closeErr := s.Close()
	if closeErr != nil {
		if err == nil {
			return fmt.Errorf("close archive: %w", closeErr)
		}
		return fmt.Errorf("serve MCP: %v; close archive: %w", err, closeErr)
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}
