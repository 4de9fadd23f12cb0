// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs one topic query end to end: dispatch to the
// search backends, filter for recency and relevance, and turn the
// survivors into gap records. Each run is stateless; nothing persists
// beyond the returned result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/gap-hunter/internal/gaps"
	"github.com/pdiddy/gap-hunter/internal/search"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// ErrInsufficientData reports that no usable paper survived filtering,
// including the fallback attempt. Callers show this to the user instead
// of a stack trace.
var ErrInsufficientData = errors.New("insufficient data for this topic")

const (
	defaultRecencyWindow = 5
	defaultMaxRecords    = 5
)

// Result holds the outcome of one hunt.
type Result struct {
	// Topic is the validated (trimmed, possibly truncated) topic.
	Topic string `json:"topic" yaml:"topic"`

	// Gaps holds one record per surviving paper, in dispatch order.
	Gaps []types.GapRecord `json:"gaps" yaml:"gaps"`

	// BackendErrors lists per-source failures that were tolerated.
	BackendErrors []string `json:"backend_errors,omitempty" yaml:"backend_errors,omitempty"`

	// FallbackUsed reports whether the scholar fallback was invoked.
	FallbackUsed bool `json:"fallback_used,omitempty" yaml:"fallback_used,omitempty"`
}

// Pipeline wires the dispatcher and heuristic together.
type Pipeline struct {
	backends  []search.Backend
	fallback  search.Backend
	searchCfg types.SearchConfig
	heurCfg   types.HeuristicConfig
}

// New builds a pipeline with the standard backend set: Semantic Scholar,
// CORE, and Crossref in that order, with the Google Custom Search
// fallback behind them.
func New(client *http.Client, cfg types.PipelineConfig) *Pipeline {
	return &Pipeline{
		backends: []search.Backend{
			&search.SemanticScholarBackend{Client: client},
			&search.COREBackend{Client: client},
			&search.CrossrefBackend{Client: client},
		},
		fallback:  &search.ScholarFallbackBackend{Client: client},
		searchCfg: cfg.Search,
		heurCfg:   cfg.Heuristic,
	}
}

// NewWithBackends builds a pipeline over explicit backends. Used by tests
// and by callers that disable individual sources.
func NewWithBackends(backends []search.Backend, fallback search.Backend, cfg types.PipelineConfig) *Pipeline {
	return &Pipeline{
		backends:  backends,
		fallback:  fallback,
		searchCfg: cfg.Search,
		heurCfg:   cfg.Heuristic,
	}
}

// Hunt runs the full pipeline for one topic. Progress and warnings go
// to w. Topic validation errors and ErrInsufficientData are the only
// error returns; individual backend failures degrade to warnings.
func (p *Pipeline) Hunt(ctx context.Context, topic string, w io.Writer) (Result, error) {
	validated, err := search.ValidateTopic(topic)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "hunting gaps for %q\n", validated)

	out, err := search.Dispatch(ctx, validated, p.backends, p.fallback, p.searchCfg, w)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Topic:         validated,
		BackendErrors: out.BackendErrors,
		FallbackUsed:  out.FallbackUsed,
	}

	now := time.Now()
	recent := FilterRecent(out.Records, p.recencyWindow(), now)
	fmt.Fprintf(w, "%d of %d papers within the last %d years\n", len(recent), len(out.Records), p.recencyWindow())

	relevant := FilterRelevant(recent, validated)
	if len(relevant) == 0 {
		return result, ErrInsufficientData
	}

	max := p.heurCfg.MaxRecords
	if max <= 0 {
		max = defaultMaxRecords
	}
	if len(relevant) > max {
		relevant = relevant[:max]
	}

	h := gaps.New(p.heurCfg.Seed)
	for _, paper := range relevant {
		result.Gaps = append(result.Gaps, h.Analyze(paper, validated))
	}
	return result, nil
}

func (p *Pipeline) recencyWindow() int {
	if p.heurCfg.RecencyWindowYears <= 0 {
		return defaultRecencyWindow
	}
	return p.heurCfg.RecencyWindowYears
}

// FilterRecent drops records older than window years before now.
// Normalization guarantees every record carries a year, so there is no
// unknown-year case to special-case here.
func FilterRecent(records []types.PaperRecord, window int, now time.Time) []types.PaperRecord {
	cutoff := now.Year() - window
	var kept []types.PaperRecord
	for _, r := range records {
		if r.Year >= cutoff {
			kept = append(kept, r)
		}
	}
	return kept
}

// FilterRelevant keeps records whose title or abstract mentions any
// topic word. Records with no usable text are kept as well; when fewer
// than three records match, the whole input is kept. Both rules make
// the filter lenient on sparse metadata.
func FilterRelevant(records []types.PaperRecord, topic string) []types.PaperRecord {
	topicWords := strings.Fields(strings.ToLower(topic))

	var kept []types.PaperRecord
	for _, r := range records {
		text := strings.ToLower(r.Title + " " + r.Abstract)
		if strings.TrimSpace(text) == "" {
			kept = append(kept, r)
			continue
		}
		for _, word := range topicWords {
			if strings.Contains(text, word) {
				kept = append(kept, r)
				break
			}
		}
	}

	if len(kept) < 3 {
		return records
	}
	return kept
}
