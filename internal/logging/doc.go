// Package logging assembles the structured slog loggers used across the
// sentrim pipeline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so stage code automatically
// tags log lines with queue item IDs, stage names, and run identifiers. A
// no-op logger is available for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
