// Package slog decorates wikisynth services with structured logging.
package slog
