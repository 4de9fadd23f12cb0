// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/gap-hunter/internal/httputil"
	"github.com/pdiddy/gap-hunter/internal/normalize"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// crossrefAPIBase is the Crossref works search endpoint. Declared as a
// var so tests can substitute an httptest server.
var crossrefAPIBase = "https://api.crossref.org/works"

// CrossrefBackend queries the Crossref REST API. No API key; the contact
// email is sent as the mailto parameter for polite pool access.
type CrossrefBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *CrossrefBackend) Name() types.SourceAPI { return types.SourceCrossref }

// Search queries the Crossref API and returns normalized records.
func (b *CrossrefBackend) Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.PaperRecord, error) {
	params := url.Values{
		"query": {topic},
		"rows":  {fmt.Sprintf("%d", maxPerSource(cfg))},
		"sort":  {"published"},
		"order": {"desc"},
	}
	if cfg.ContactEmail != "" {
		params.Set("mailto", cfg.ContactEmail)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, crossrefAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Crossref API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Crossref API returned HTTP %d", resp.StatusCode)
	}

	var cr crossrefResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing Crossref response: %w", err)
	}

	now := time.Now()
	var records []types.PaperRecord
	for _, item := range cr.Message.Items {
		// Crossref titles and container titles arrive as string lists.
		r := types.PaperRecord{
			Title:    normalize.Title(item.Title...),
			Author:   normalize.Unavailable,
			Abstract: item.Abstract,
			Source:   types.SourceCrossref,
		}

		if len(item.Author) > 0 {
			a := item.Author[0]
			if a.Family != "" {
				r.Author = a.Family
			} else {
				r.Author = normalize.Surname(a.Given)
			}
		}

		r.Year = normalize.Year(item.Published.Year(), now)
		r.DOI = normalize.DOI(item.DOI, item.URL)

		if len(item.ContainerTitle) > 0 {
			r.Venue = item.ContainerTitle[0]
		}

		records = append(records, r)
	}
	return records, nil
}

// Crossref API JSON structures.
type crossrefResponse struct {
	Message crossrefMessage `json:"message"`
}

type crossrefMessage struct {
	Items []crossrefItem `json:"items"`
}

type crossrefItem struct {
	DOI            string           `json:"DOI"`
	URL            string           `json:"URL"`
	Title          []string         `json:"title"`
	ContainerTitle []string         `json:"container-title"`
	Abstract       string           `json:"abstract"`
	Author         []crossrefAuthor `json:"author"`
	Published      crossrefDate     `json:"published"`
}

type crossrefAuthor struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

type crossrefDate struct {
	DateParts [][]int `json:"date-parts"`
}

// Year returns the leading date-part, or 0 when absent.
func (d crossrefDate) Year() int {
	if len(d.DateParts) == 0 || len(d.DateParts[0]) == 0 {
		return 0
	}
	return d.DateParts[0][0]
}
