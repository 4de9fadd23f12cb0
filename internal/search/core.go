// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/gap-hunter/internal/httputil"
	"github.com/pdiddy/gap-hunter/internal/normalize"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// coreAPIBase is the CORE v3 works search endpoint. Declared as a var so
// tests can substitute an httptest server.
var coreAPIBase = "https://api.core.ac.uk/v3/search/works"

// COREBackend queries the CORE v3 API. Requires an API key sent as a
// bearer token.
type COREBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *COREBackend) Name() types.SourceAPI { return types.SourceCORE }

// Search queries the CORE API and returns normalized records.
func (b *COREBackend) Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.PaperRecord, error) {
	if cfg.COREAPIKey == "" {
		return nil, fmt.Errorf("CORE API key not configured")
	}

	params := url.Values{
		"q":     {topic},
		"limit": {fmt.Sprintf("%d", maxPerSource(cfg))},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, coreAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Authorization", "Bearer "+cfg.COREAPIKey)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("CORE API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CORE API returned HTTP %d", resp.StatusCode)
	}

	var cr coreResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, fmt.Errorf("parsing CORE response: %w", err)
	}

	now := time.Now()
	var records []types.PaperRecord
	for _, work := range cr.Results {
		// CORE sometimes carries the title under "name".
		r := types.PaperRecord{
			Title:    normalize.Title(firstNonEmpty(work.Title, work.Name)),
			Author:   normalize.Unavailable,
			Abstract: work.Abstract,
			Source:   types.SourceCORE,
		}

		if len(work.Authors) > 0 {
			r.Author = normalize.Surname(work.Authors[0].Name)
		}

		year := work.YearPublished
		if year == 0 {
			year = normalize.YearFromDate(work.PublishedDate)
		}
		r.Year = normalize.Year(year, now)

		// DOI candidates in priority order: the doi field, then the
		// typed identifier list, then the download URL.
		candidates := []string{work.DOI}
		for _, id := range work.Identifiers {
			if strings.EqualFold(id.Type, "DOI") {
				candidates = append(candidates, id.Identifier)
			}
		}
		candidates = append(candidates, work.DownloadURL)
		r.DOI = normalize.DOI(candidates...)

		if len(work.Journals) > 0 {
			r.Venue = work.Journals[0].Title
		} else {
			r.Venue = work.Publisher
		}

		records = append(records, r)
	}
	return records, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// CORE API JSON structures.
type coreResponse struct {
	TotalHits int        `json:"totalHits"`
	Results   []coreWork `json:"results"`
}

type coreWork struct {
	Title         string           `json:"title"`
	Name          string           `json:"name"`
	Abstract      string           `json:"abstract"`
	YearPublished int              `json:"yearPublished"`
	PublishedDate string           `json:"publishedDate"`
	DOI           string           `json:"doi"`
	DownloadURL   string           `json:"downloadUrl"`
	Publisher     string           `json:"publisher"`
	Authors       []coreAuthor     `json:"authors"`
	Identifiers   []coreIdentifier `json:"identifiers"`
	Journals      []coreJournal    `json:"journals"`
}

type coreAuthor struct {
	Name string `json:"name"`
}

type coreIdentifier struct {
	Identifier string `json:"identifier"`
	Type       string `json:"type"`
}

type coreJournal struct {
	Title string `json:"title"`
}
