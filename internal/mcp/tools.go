package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/louisbranch/ringrand/internal/platform/timeouts"
	"github.com/louisbranch/ringrand/internal/prng/dump"
	"github.com/louisbranch/ringrand/internal/random"
	"github.com/louisbranch/ringrand/internal/storage"
	"github.com/louisbranch/ringrand/internal/tools/generate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// maxToolValues caps how many values one prng_generate call may request.
	maxToolValues = 1 << 16
	// maxToolSeedBytes caps prng_seed output.
	maxToolSeedBytes = 4096
	// defaultTranscriptPageSize applies when prng_transcript gets no page size.
	defaultTranscriptPageSize = 100
	// maxTranscriptPageSize caps prng_transcript pages.
	maxTranscriptPageSize = 1000
)

// TranscriptLine is one key:value line of a generator transcript.
type TranscriptLine struct {
	Key   string `json:"key" jsonschema:"line key such as v_state_u8 or v_vec_u64"`
	Value string `json:"value" jsonschema:"line value in transcript text form"`
}

// GenerateInput represents the MCP tool input for a generator run.
type GenerateInput struct {
	SeedU8     string `json:"seed_u8" jsonschema:"comma-separated hex seed bytes, e.g. 0A,FF,00"`
	LengthU8   int    `json:"length_u8" jsonschema:"state size in bytes, a positive multiple of 32"`
	TypesOfArr string `json:"types_of_arr" jsonschema:"comma-separated type:length pairs, type is u64 or f64"`
}

// GenerateResult represents the MCP tool output for a generator run.
type GenerateResult struct {
	RunID string           `json:"run_id,omitempty" jsonschema:"archive run identifier when archiving is enabled"`
	Lines []TranscriptLine `json:"lines" jsonschema:"transcript lines in emission order"`
}

// SeedInput represents the MCP tool input for seed generation.
type SeedInput struct {
	Bytes int `json:"bytes,omitempty" jsonschema:"number of seed bytes (default 32)"`
}

// SeedResult represents the MCP tool output for seed generation.
type SeedResult struct {
	SeedU8 string `json:"seed_u8" jsonschema:"comma-separated hex seed bytes"`
}

// TranscriptInput represents the MCP tool input for reading an archived run.
type TranscriptInput struct {
	RunID     string `json:"run_id" jsonschema:"archive run identifier"`
	PageSize  int    `json:"page_size,omitempty" jsonschema:"maximum lines to return (default 100)"`
	PageToken string `json:"page_token,omitempty" jsonschema:"token from a previous page"`
}

// TranscriptResult represents the MCP tool output for reading an archived run.
type TranscriptResult struct {
	RunID         string           `json:"run_id"`
	SeedU8        string           `json:"seed_u8"`
	LengthU8      int              `json:"length_u8"`
	TypesOfArr    string           `json:"types_of_arr"`
	Lines         []TranscriptLine `json:"lines"`
	NextPageToken string           `json:"next_page_token,omitempty"`
}

func registerTools(mcpServer *mcp.Server, archive storage.Archive) {
	mcp.AddTool(mcpServer, GenerateTool(), GenerateHandler(archive))
	mcp.AddTool(mcpServer, SeedTool(), SeedHandler())
	if archive != nil {
		mcp.AddTool(mcpServer, TranscriptTool(), TranscriptHandler(archive))
	}
}

// GenerateTool defines the MCP tool schema for generator runs.
func GenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "prng_generate",
		Description: "Runs the deterministic generator and returns its transcript",
	}
}

// SeedTool defines the MCP tool schema for seed generation.
func SeedTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "prng_seed",
		Description: "Returns random seed bytes in seed_u8 form",
	}
}

// TranscriptTool defines the MCP tool schema for archived transcripts.
func TranscriptTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "prng_transcript",
		Description: "Pages through the transcript of an archived generator run",
	}
}

// GenerateHandler executes one generator run. A nil archive disables archiving.
func GenerateHandler(archive storage.Archive) mcp.ToolHandlerFor[GenerateInput, GenerateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateResult, error) {
		cfg, err := generate.ParseFields(input.SeedU8, strconv.Itoa(input.LengthU8), input.TypesOfArr)
		if err != nil {
			return nil, GenerateResult{}, err
		}
		if n := cfg.Values(); n > maxToolValues {
			return nil, GenerateResult{}, fmt.Errorf("%d values requested, limit is %d", n, maxToolValues)
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.ToolCall)
		defer cancel()

		var out bytes.Buffer
		result, err := generate.Run(runCtx, cfg, &out, archive)
		if err != nil {
			return nil, GenerateResult{}, fmt.Errorf("generate: %w", err)
		}
		lines, err := dump.ReadLines(&out)
		if err != nil {
			return nil, GenerateResult{}, fmt.Errorf("read transcript: %w", err)
		}
		return nil, GenerateResult{RunID: result.RunID, Lines: transcriptLines(lines)}, nil
	}
}

// SeedHandler returns fresh random seed bytes.
func SeedHandler() mcp.ToolHandlerFor[SeedInput, SeedResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SeedInput) (*mcp.CallToolResult, SeedResult, error) {
		n := input.Bytes
		if n == 0 {
			n = random.DefaultSeedBytes
		}
		if n < 0 || n > maxToolSeedBytes {
			return nil, SeedResult{}, fmt.Errorf("bytes must be between 1 and %d", maxToolSeedBytes)
		}
		seed, err := random.NewSeed(n)
		if err != nil {
			return nil, SeedResult{}, err
		}
		return nil, SeedResult{SeedU8: dump.JoinBytes(seed)}, nil
	}
}

// TranscriptHandler returns one page of an archived run.
func TranscriptHandler(archive storage.Archive) mcp.ToolHandlerFor[TranscriptInput, TranscriptResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TranscriptInput) (*mcp.CallToolResult, TranscriptResult, error) {
		if archive == nil {
			return nil, TranscriptResult{}, errors.New("archive is not configured")
		}
		pageSize := input.PageSize
		if pageSize <= 0 {
			pageSize = defaultTranscriptPageSize
		}
		pageSize = min(pageSize, maxTranscriptPageSize)

		run, err := archive.GetRun(ctx, input.RunID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, TranscriptResult{}, fmt.Errorf("run %q not found", input.RunID)
			}
			return nil, TranscriptResult{}, fmt.Errorf("get run: %w", err)
		}
		page, err := archive.ListLines(ctx, run.ID, pageSize, input.PageToken)
		if err != nil {
			return nil, TranscriptResult{}, fmt.Errorf("list lines: %w", err)
		}

		result := TranscriptResult{
			RunID:         run.ID,
			SeedU8:        dump.JoinBytes(run.Seed),
			LengthU8:      run.LengthU8,
			TypesOfArr:    run.Requests,
			Lines:         make([]TranscriptLine, 0, len(page.Lines)),
			NextPageToken: page.NextPageToken,
		}
		for _, line := range page.Lines {
			result.Lines = append(result.Lines, TranscriptLine{Key: line.Key, Value: line.Value})
		}
		return nil, result, nil
	}
}

func transcriptLines(lines []dump.Line) []TranscriptLine {
	out := make([]TranscriptLine, len(lines))
	for i, line := range lines {
		out[i] = TranscriptLine{Key: line.Key, Value: line.Value}
	}
	return out
}
