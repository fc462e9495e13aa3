// Package server implements an MCP (Model Context Protocol) server that
// exposes the edge map pipeline as tools.
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
//   - raster_load: Decode a JPEG and report its dimensions
//   - raster_export: Write the color, gray or edge raster as P3/P2 text
//   - raster_sample_pixel: Report color, luma and gradient at one pixel
//   - raster_preview: Render a stage as a base64 PNG
//
// # Image Caching
//
// Decoded images, together with their grayscale reduction, are cached by
// path for the lifetime of the process, so repeated tool calls on the same
// file decode it once.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server
