// Package server implements the MCP (Model Context Protocol) server for the
// paint-by-number tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the conversion
// pipeline, fill tracking, rendering and session persistence through the MCP
// protocol, so MCP-compatible clients can drive a paint-by-number workspace.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image and Conversion:
//   - pbn_load: Load a base64 source image
//   - pbn_convert: Build the board (palette, tessellation, cell codes)
//   - pbn_result: Full conversion result
//   - pbn_palette: Palette entries with labels
//
// Filling:
//   - pbn_fill: Fill one cell
//   - pbn_unfill: Clear one cell
//   - pbn_fill_batch: Fill many cells at once
//   - pbn_reset_fills: Clear every fill
//   - pbn_progress: Completion stats, overall and per code
//
// Rendering:
//   - pbn_render_outline: Unpainted board as PNG
//   - pbn_render_preview: Work-in-progress board as PNG
//
// Analysis:
//   - pbn_analyze_colors: Dominant colors of the source image
//   - pbn_error_report: Quantization error of the current board
//
// Persistence:
//   - pbn_save_session: Save image, board and fills under a name
//   - pbn_load_session: Restore a saved session
//   - pbn_list_sessions: List saved sessions
//   - pbn_delete_session: Delete a saved session
//
// # Session Model
//
// The server owns exactly one live session. pbn_load replaces its source
// image, pbn_convert (re)builds its board, and the fill tools mutate its
// fill set. Conversions always start from the originally loaded bytes, so
// converting repeatedly with different settings never accumulates
// quality loss. Saved sessions live in SQLite and survive restarts.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(cfg, st, logger)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
