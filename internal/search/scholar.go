// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/gap-hunter/internal/httputil"
	"github.com/pdiddy/gap-hunter/internal/normalize"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

// scholarAPIBase is the Google Custom Search endpoint used as the
// fallback when the primary academic APIs yield nothing. Declared as a
// var so tests can substitute an httptest server.
var scholarAPIBase = "https://www.googleapis.com/customsearch/v1"

// defaultScholarCSE is a Custom Search engine scoped to scholarly sites.
const defaultScholarCSE = "017576662512468239146:omuauf_lfve"

var (
	yearPattern   = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	authorPattern = regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)
)

// ScholarFallbackBackend searches scholarly sites through the Google
// Custom Search API. Metadata is scraped out of result snippets, so the
// records are best-effort only.
type ScholarFallbackBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *ScholarFallbackBackend) Name() types.SourceAPI { return types.SourceScholarFallback }

// Search queries the Custom Search API and returns normalized records.
func (b *ScholarFallbackBackend) Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.PaperRecord, error) {
	if cfg.GoogleAPIKey == "" {
		return nil, fmt.Errorf("Google API key not configured")
	}
	cseID := cfg.GoogleCSEID
	if cseID == "" {
		cseID = defaultScholarCSE
	}

	n := maxPerSource(cfg)
	if n > 10 {
		n = 10 // Custom Search caps num at 10 per request.
	}

	params := url.Values{
		"key":    {cfg.GoogleAPIKey},
		"cx":     {cseID},
		"q":      {fmt.Sprintf("%q filetype:pdf OR site:scholar.google.com OR site:arxiv.org", topic)},
		"num":    {strconv.Itoa(n)},
		"fields": {"items(title,link,snippet,displayLink)"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scholarAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Custom Search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Custom Search returned HTTP %d", resp.StatusCode)
	}

	var sr scholarResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Custom Search response: %w", err)
	}

	now := time.Now()
	var records []types.PaperRecord
	for _, item := range sr.Items {
		r := types.PaperRecord{
			Title:    normalize.Title(item.Title),
			Author:   normalize.Unavailable,
			Abstract: item.Snippet,
			Year:     normalize.Year(snippetYear(item.Snippet), now),
			DOI:      normalize.DOI(item.Link),
			Venue:    venueFromHost(item.DisplayLink),
			Source:   types.SourceScholarFallback,
		}
		if a := authorPattern.FindString(item.Snippet); a != "" {
			r.Author = normalize.Surname(a)
		}
		records = append(records, r)
	}
	return records, nil
}

// snippetYear pulls the first plausible publication year out of a
// result snippet.
func snippetYear(snippet string) int {
	m := yearPattern.FindString(snippet)
	if m == "" {
		return 0
	}
	year, _ := strconv.Atoi(m)
	return year
}

// venueFromHost maps a result host to a readable venue name.
func venueFromHost(host string) string {
	switch {
	case strings.Contains(host, "arxiv.org"):
		return "arXiv"
	case strings.Contains(host, "scholar.google.com"):
		return "Google Scholar"
	case strings.Contains(host, "ieee.org"):
		return "IEEE"
	case strings.Contains(host, "acm.org"):
		return "ACM"
	case strings.Contains(host, "springer.com"):
		return "Springer"
	case host == "":
		return ""
	default:
		parts := strings.Split(strings.TrimPrefix(host, "www."), ".")
		return capitalize(parts[0])
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Custom Search API JSON structures.
type scholarResponse struct {
	Items []scholarItem `json:"items"`
}

type scholarItem struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Snippet     string `json:"snippet"`
	DisplayLink string `json:"displayLink"`
}
