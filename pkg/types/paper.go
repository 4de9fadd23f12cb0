// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the gap-hunter pipeline.
package types

// SourceAPI identifies which academic search API produced a record.
type SourceAPI string

const (
	SourceSemanticScholar SourceAPI = "semantic_scholar"
	SourceCORE            SourceAPI = "core"
	SourceCrossref        SourceAPI = "crossref"
	SourceScholarFallback SourceAPI = "scholar_fallback"
)

// PaperRecord is the common shape every backend normalizes its JSON into.
// Records are ephemeral: they live for one query-response cycle and are
// discarded after gap extraction and formatting.
type PaperRecord struct {
	// Title is the paper title, flattened to a single string and capped
	// at 50 characters for display.
	Title string `json:"title" yaml:"title"`

	// Author is the lead author's surname only.
	Author string `json:"author" yaml:"author"`

	// Year is the publication year, always within [1900, current year].
	// Out-of-range or missing values are replaced with the current year
	// so a future year is never shown.
	Year int `json:"year" yaml:"year"`

	// DOI is the validated Digital Object Identifier, empty when the
	// source carried none. Never a placeholder string.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Abstract is the paper abstract or snippet, possibly empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Venue is the journal or container name used for the Q1 guess.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Source identifies the backend that found this record.
	Source SourceAPI `json:"source" yaml:"source"`
}
