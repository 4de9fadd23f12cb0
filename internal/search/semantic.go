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

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,abstract,authors,externalIds,year,publicationDate,journal,url"

// SemanticScholarBackend queries the Semantic Scholar Graph API.
type SemanticScholarBackend struct {
	Client *http.Client
}

// Name returns the backend identifier.
func (b *SemanticScholarBackend) Name() types.SourceAPI { return types.SourceSemanticScholar }

// Search queries the Semantic Scholar API and returns normalized records.
func (b *SemanticScholarBackend) Search(ctx context.Context, topic string, cfg types.SearchConfig) ([]types.PaperRecord, error) {
	params := url.Values{
		"query":  {topic},
		"limit":  {fmt.Sprintf("%d", maxPerSource(cfg))},
		"sort":   {"publicationDate:desc"},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)
	if cfg.SemanticScholarAPIKey != "" {
		req.Header.Set("x-api-key", cfg.SemanticScholarAPIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, b.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar API returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	now := time.Now()
	var records []types.PaperRecord
	for _, paper := range sr.Data {
		r := types.PaperRecord{
			Title:    normalize.Title(paper.Title),
			Author:   normalize.Unavailable,
			Abstract: paper.Abstract,
			Venue:    paper.Journal.Name,
			Source:   types.SourceSemanticScholar,
		}

		if len(paper.Authors) > 0 {
			r.Author = normalize.Surname(paper.Authors[0].Name)
		}

		year := paper.Year
		if year == 0 {
			year = normalize.YearFromDate(paper.PublicationDate)
		}
		r.Year = normalize.Year(year, now)

		r.DOI = normalize.DOI(paper.ExternalIDs.DOI, paper.URL)

		records = append(records, r)
	}
	return records, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID         string              `json:"paperId"`
	Title           string              `json:"title"`
	Abstract        string              `json:"abstract"`
	Year            int                 `json:"year"`
	PublicationDate string              `json:"publicationDate"`
	URL             string              `json:"url"`
	Journal         semanticJournal     `json:"journal"`
	Authors         []semanticAuthor    `json:"authors"`
	ExternalIDs     semanticExternalIDs `json:"externalIds"`
}

type semanticJournal struct {
	Name string `json:"name"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}
