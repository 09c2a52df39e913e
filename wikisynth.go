// Package wikisynth turns Wikipedia articles into structured, readable
// summaries. It fetches raw wikitext from the MediaWiki API, normalizes it
// through a chain of pure text transformations and exposes the result as
// sections, paragraphs, media items and references, plus keyword
// suggestions mined from the cleaned prose.
//
// This package contains domain types, interfaces and the normalization
// pipeline stages following Ben Johnson's Standard Package Layout.
// Implementations that depend on external systems live in subdirectories
// named after their primary dependency (e.g., mediawiki/, sqlite/, gemini/).
package wikisynth
