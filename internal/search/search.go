// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries academic APIs and returns normalized paper records.
// Each backend (Semantic Scholar, CORE, Crossref) implements the Backend
// interface per the Strategy pattern; a Google Custom Search backend serves
// as a best-effort fallback when the primary APIs come up empty.
package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pdiddy/gap-hunter/internal/normalize"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// Backend searches a single academic API.
type Backend interface {
	Name() types.SourceAPI
	Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.PaperRecord, error)
}

const (
	minTopicLen = 3
	maxTopicLen = 200
)

// ErrInvalidTopic reports an empty or too-short topic. Validation happens
// before any API call is issued.
var ErrInvalidTopic = errors.New("topic must be at least 3 characters: provide a research topic")

// ValidateTopic trims the topic, rejects anything shorter than 3
// characters, and truncates anything longer than 200. Lengths count
// characters, not bytes, so non-ASCII topics validate correctly.
func ValidateTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if utf8.RuneCountInString(topic) < minTopicLen {
		return "", ErrInvalidTopic
	}
	return normalize.TruncateRunes(topic, maxTopicLen), nil
}

// DispatchOutput holds the combined records and per-backend failures.
type DispatchOutput struct {
	Records       []types.PaperRecord
	BackendErrors []string
	// FallbackUsed reports whether the fallback backend was invoked.
	FallbackUsed bool
}

// Dispatch queries each backend in sequence, pausing InterBackendDelay
// between calls. A failing backend contributes zero records and a warning
// on w; it never aborts the run. When every primary backend fails or
// returns nothing, the fallback backend (if any) is tried.
func Dispatch(ctx context.Context, topic string, backends []Backend, fallback Backend, cfg types.SearchConfig, w io.Writer) (DispatchOutput, error) {
	topic, err := ValidateTopic(topic)
	if err != nil {
		return DispatchOutput{}, err
	}
	if len(backends) == 0 && fallback == nil {
		return DispatchOutput{}, fmt.Errorf("no search backends configured")
	}

	var out DispatchOutput
	for i, b := range backends {
		if i > 0 && cfg.InterBackendDelay > 0 {
			select {
			case <-ctx.Done():
				return out, ctx.Err()
			case <-time.After(cfg.InterBackendDelay):
			}
		}

		records, err := b.Search(ctx, topic, cfg)
		if err != nil {
			out.BackendErrors = append(out.BackendErrors, fmt.Sprintf("%s: %v", b.Name(), err))
			fmt.Fprintf(w, "warning: backend %s failed: %v\n", b.Name(), err)
			continue
		}
		fmt.Fprintf(w, "%s: %d papers\n", b.Name(), len(records))
		out.Records = append(out.Records, records...)
	}

	if len(out.Records) == 0 && fallback != nil {
		fmt.Fprintf(w, "no results from primary APIs, trying %s\n", fallback.Name())
		out.FallbackUsed = true
		records, err := fallback.Search(ctx, topic, cfg)
		if err != nil {
			out.BackendErrors = append(out.BackendErrors, fmt.Sprintf("%s: %v", fallback.Name(), err))
			fmt.Fprintf(w, "warning: fallback %s failed: %v\n", fallback.Name(), err)
		} else {
			out.Records = append(out.Records, records...)
		}
	}

	return out, nil
}

// maxPerSource returns the per-backend record cap, defaulting to 5.
func maxPerSource(cfg types.SearchConfig) int {
	if cfg.MaxPerSource <= 0 {
		return 5
	}
	if cfg.MaxPerSource > 100 {
		return 100
	}
	return cfg.MaxPerSource
}
