// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/gap-hunter/pkg/types"
)

func scholarCfg() types.SearchConfig {
	cfg := testCfg()
	cfg.GoogleAPIKey = "gk_test"
	return cfg
}

func TestScholarFallbackRequiresAPIKey(t *testing.T) {
	b := &ScholarFallbackBackend{Client: http.DefaultClient}
	_, err := b.Search(context.Background(), "test topic", testCfg())
	if err == nil {
		t.Fatal("expected error without API key")
	}
	if !strings.Contains(err.Error(), "key not configured") {
		t.Errorf("error = %q, want key-not-configured message", err.Error())
	}
}

func TestScholarFallbackRequestShape(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	cfg := scholarCfg()
	cfg.GoogleCSEID = "custom-cse"
	cfg.MaxPerSource = 25 // above the Custom Search per-request limit

	b := &ScholarFallbackBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "deep learning", cfg); err != nil {
		t.Fatalf("Search: %v", err)
	}

	q := capturedReq.URL.Query()
	if got := q.Get("key"); got != "gk_test" {
		t.Errorf("key param = %q", got)
	}
	if got := q.Get("cx"); got != "custom-cse" {
		t.Errorf("cx param = %q", got)
	}
	if got := q.Get("num"); got != "10" {
		t.Errorf("num param = %q, want capped at 10", got)
	}
	if !strings.Contains(q.Get("q"), `"deep learning"`) {
		t.Errorf("q param = %q, want quoted topic", q.Get("q"))
	}
	if !strings.Contains(q.Get("q"), "site:arxiv.org") {
		t.Errorf("q param = %q, want scholarly site restriction", q.Get("q"))
	}
}

func TestScholarFallbackDefaultCSE(t *testing.T) {
	var capturedReq *http.Request
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedReq = r
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"items":[]}`)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	b := &ScholarFallbackBackend{Client: ts.Client()}
	if _, err := b.Search(context.Background(), "test topic", scholarCfg()); err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := capturedReq.URL.Query().Get("cx"); got != defaultScholarCSE {
		t.Errorf("cx param = %q, want default scholar CSE", got)
	}
}

func TestScholarFallbackSnippetScraping(t *testing.T) {
	resp := `{"items":[
		{"title":"Robust Perception for Autonomous Driving",
		 "link":"https://arxiv.org/abs/2403.01234",
		 "snippet":"John Carter, Mary Lane - 2023 - We propose a robust perception stack.",
		 "displayLink":"arxiv.org"},
		{"title":"Some Paper",
		 "link":"https://doi.org/10.1109/tpami.2022.99",
		 "snippet":"no year here",
		 "displayLink":"www.sciencedirect.com"}]}`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, resp)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	b := &ScholarFallbackBackend{Client: ts.Client()}
	records, err := b.Search(context.Background(), "test topic", scholarCfg())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}

	first := records[0]
	if first.Year != 2023 {
		t.Errorf("Year = %d, want year scraped from snippet", first.Year)
	}
	if first.Author != "Carter" {
		t.Errorf("Author = %q, want surname scraped from snippet", first.Author)
	}
	if first.Venue != "arXiv" {
		t.Errorf("Venue = %q, want arXiv", first.Venue)
	}
	if first.Source != types.SourceScholarFallback {
		t.Errorf("Source = %q", first.Source)
	}

	second := records[1]
	if second.DOI != "10.1109/tpami.2022.99" {
		t.Errorf("DOI = %q, want DOI extracted from link", second.DOI)
	}
	if second.Venue != "Sciencedirect" {
		t.Errorf("Venue = %q, want host-derived venue", second.Venue)
	}
}

func TestVenueFromHost(t *testing.T) {
	tests := []struct {
		host string
		want string
	}{
		{"arxiv.org", "arXiv"},
		{"scholar.google.com", "Google Scholar"},
		{"ieeexplore.ieee.org", "IEEE"},
		{"dl.acm.org", "ACM"},
		{"link.springer.com", "Springer"},
		{"www.nature.com", "Nature"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			if got := venueFromHost(tt.host); got != tt.want {
				t.Errorf("venueFromHost(%q) = %q, want %q", tt.host, got, tt.want)
			}
		})
	}
}

func TestScholarFallbackQuotaExceeded(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	old := scholarAPIBase
	scholarAPIBase = ts.URL
	defer func() { scholarAPIBase = old }()

	b := &ScholarFallbackBackend{Client: ts.Client()}
	_, err := b.Search(context.Background(), "test topic", scholarCfg())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("error = %q, want HTTP 403", err.Error())
	}
}

func TestScholarFallbackBackendName(t *testing.T) {
	b := &ScholarFallbackBackend{}
	if got := b.Name(); got != types.SourceScholarFallback {
		t.Errorf("Name() = %q, want %q", got, types.SourceScholarFallback)
	}
}
