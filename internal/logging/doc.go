// Package logging assembles the structured slog loggers used across
// recorderctl.
//
// It centralizes level parsing, console/JSON handler selection, and log-file
// plumbing, and exposes attribute helpers plus a no-op logger for tests and
// wiring code that cannot fail. Prefer these constructors over hand-rolled
// slog setup so every component emits the same shape.
package logging
