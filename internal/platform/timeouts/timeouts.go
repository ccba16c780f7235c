// Package timeouts defines shared timeout constants used across commands.
package timeouts

import "time"

// Shutdown limits how long a command waits for telemetry to flush on exit.
const Shutdown = 5 * time.Second

// ToolCall caps the time allowed for a single MCP tool invocation.
const ToolCall = 30 * time.Second
