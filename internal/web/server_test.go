// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/gap-hunter/internal/pipeline"
	"github.com/pdiddy/gap-hunter/internal/search"
	"github.com/pdiddy/gap-hunter/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubHunter struct {
	result pipeline.Result
	err    error
}

func (s *stubHunter) Hunt(_ context.Context, topic string, _ io.Writer) (pipeline.Result, error) {
	if s.err != nil {
		return pipeline.Result{}, s.err
	}
	r := s.result
	if r.Topic == "" {
		r.Topic = topic
	}
	return r, nil
}

func sampleHunter() *stubHunter {
	return &stubHunter{
		result: pipeline.Result{
			Topic: "federated learning",
			Gaps: []types.GapRecord{{
				Paper:     "Smith 2025 Scalable Federated Training",
				Gap:       "Limited scalability of federated learning methods in real-world applications",
				Keywords:  []string{"federated", "learning", "performance"},
				Score:     4,
				Q1:        true,
				NextSteps: "Design experiments using federated and learning methodologies.",
			}},
		},
	}
}

func TestIndexPage(t *testing.T) {
	srv := httptest.NewServer(NewServer(sampleHunter()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `name="topic"`) {
		t.Error("index page missing topic form field")
	}
}

func TestHuntHTMLRendersGaps(t *testing.T) {
	srv := httptest.NewServer(NewServer(sampleHunter()).Handler())
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/hunt", url.Values{"topic": {"federated learning"}})
	if err != nil {
		t.Fatalf("POST /hunt: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{
		"Smith 2025 Scalable Federated Training",
		"Limited scalability of federated learning",
		"Novelty: 4/5",
		"Q1 venue",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("results page missing %q", want)
		}
	}
}

func TestHuntHTMLInvalidTopic(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubHunter{err: search.ErrInvalidTopic}).Handler())
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/hunt", url.Values{"topic": {"ab"}})
	if err != nil {
		t.Fatalf("POST /hunt: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "at least 3 characters") {
		t.Error("error page missing validation message")
	}
}

func TestHuntDownloadYAML(t *testing.T) {
	srv := httptest.NewServer(NewServer(sampleHunter()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/hunt?topic=federated+learning")
	if err != nil {
		t.Fatalf("GET /api/hunt: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "yaml") {
		t.Errorf("Content-Type = %q, want yaml", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "attachment") || !strings.Contains(cd, "gaps-federated-learning.yaml") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "topic: federated learning") {
		t.Errorf("body = %q, want YAML with topic", body)
	}
}

func TestHuntDownloadJSON(t *testing.T) {
	srv := httptest.NewServer(NewServer(sampleHunter()).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/hunt?topic=federated+learning&format=json")
	if err != nil {
		t.Fatalf("GET /api/hunt: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		t.Errorf("Content-Type = %q, want JSON", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, ".json") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), `"topic": "federated learning"`) {
		t.Errorf("body = %q, want indented JSON", body)
	}
}

func TestHuntDownloadInsufficientData(t *testing.T) {
	srv := httptest.NewServer(NewServer(&stubHunter{err: pipeline.ErrInsufficientData}).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/hunt?topic=some+topic")
	if err != nil {
		t.Fatalf("GET /api/hunt: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestDownloadName(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"federated learning", "gaps-federated-learning"},
		{"C++ & Rust?!", "gaps-c-rust"},
		{"", "gaps-gaps"},
	}
	for _, tt := range tests {
		if got := downloadName(tt.topic); got != tt.want {
			t.Errorf("downloadName(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}
