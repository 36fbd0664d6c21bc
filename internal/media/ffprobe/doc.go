// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no sentrim-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual stream properties
//   - Format: container-level metadata (duration, size, bitrate)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns parsed Result
//
// Helper methods on Result provide convenient access to audio stream
// detection, duration parsing, and bitrate extraction.
package ffprobe
