// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "gap-hunter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the query dispatcher.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxPerSource is the maximum number of records requested from each
	// backend (default 5).
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source"`

	// InterBackendDelay is the pause between consecutive API calls
	// (default 1s). Backends are called sequentially.
	InterBackendDelay time.Duration `json:"inter_backend_delay" yaml:"inter_backend_delay"`

	// SemanticScholarAPIKey authenticates against Semantic Scholar.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// COREAPIKey authenticates against the CORE v3 API.
	COREAPIKey string `json:"core_api_key,omitempty" yaml:"core_api_key,omitempty"`

	// GoogleAPIKey authenticates the Custom Search fallback.
	GoogleAPIKey string `json:"google_api_key,omitempty" yaml:"google_api_key,omitempty"`

	// GoogleCSEID selects the Custom Search engine for the fallback.
	GoogleCSEID string `json:"google_cse_id,omitempty" yaml:"google_cse_id,omitempty"`

	// ContactEmail is sent as the Crossref mailto parameter for polite
	// pool access. Required by that API's usage policy.
	ContactEmail string `json:"contact_email,omitempty" yaml:"contact_email,omitempty"`
}

// HeuristicConfig holds settings for recency filtering and gap scoring.
type HeuristicConfig struct {
	// RecencyWindowYears drops papers older than this many years before
	// the current year (default 5).
	RecencyWindowYears int `json:"recency_window_years" yaml:"recency_window_years"`

	// MaxRecords caps how many papers are turned into gap records
	// (default 5).
	MaxRecords int `json:"max_records" yaml:"max_records"`

	// Seed fixes the random source for template and next-step selection.
	// Zero means seed from the clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// ServerConfig holds settings for the web surface.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`
}

// PipelineConfig groups all component configurations.
type PipelineConfig struct {
	Search    SearchConfig    `json:"search" yaml:"search"`
	Heuristic HeuristicConfig `json:"heuristic" yaml:"heuristic"`
	Server    ServerConfig    `json:"server" yaml:"server"`
}
