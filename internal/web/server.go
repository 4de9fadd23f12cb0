// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package web serves the browser surface: a topic form, an HTML results
// view, and YAML/JSON download endpoints backed by the same pipeline as
// the CLI.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pdiddy/gap-hunter/internal/export"
	"github.com/pdiddy/gap-hunter/internal/pipeline"
	"github.com/pdiddy/gap-hunter/internal/search"
)

//go:embed templates/*.html
var templateFS embed.FS

// Hunter runs one topic hunt. Satisfied by *pipeline.Pipeline.
type Hunter interface {
	Hunt(ctx context.Context, topic string, w io.Writer) (pipeline.Result, error)
}

// Server is the gin application serving the gap hunter UI and API.
type Server struct {
	engine *gin.Engine
	hunter Hunter
}

// NewServer builds the router. Callers pass gin.ReleaseMode setup (if
// wanted) before constructing.
func NewServer(hunter Hunter) *Server {
	s := &Server{hunter: hunter}

	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	r.GET("/", s.index)
	r.POST("/hunt", s.huntHTML)
	r.GET("/api/hunt", s.huntDownload)

	s.engine = r
	return s
}

// Handler exposes the router for http.Server and for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error { return s.engine.Run(addr) }

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"Topic": "", "Error": ""})
}

func (s *Server) huntHTML(c *gin.Context) {
	topic := c.PostForm("topic")

	result, err := s.hunter.Hunt(c.Request.Context(), topic, io.Discard)
	if err != nil {
		c.HTML(huntErrorStatus(err), "index.html", gin.H{
			"Topic": topic,
			"Error": err.Error(),
		})
		return
	}

	c.HTML(http.StatusOK, "results.html", gin.H{
		"Topic":        result.Topic,
		"Gaps":         result.Gaps,
		"FallbackUsed": result.FallbackUsed,
		"Warnings":     result.BackendErrors,
	})
}

// huntDownload streams the hunt result as a YAML or JSON attachment.
// GET /api/hunt?topic=...&format=yaml|json
func (s *Server) huntDownload(c *gin.Context) {
	topic := c.Query("topic")
	format := export.FormatYAML
	if strings.EqualFold(c.Query("format"), "json") {
		format = export.FormatJSON
	}

	result, err := s.hunter.Hunt(c.Request.Context(), topic, io.Discard)
	if err != nil {
		c.JSON(huntErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	filename := downloadName(result.Topic) + format.Extension()
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, export.FromResult(result), format); err != nil {
		_ = c.Error(err)
	}
}

func huntErrorStatus(err error) int {
	switch {
	case errors.Is(err, search.ErrInvalidTopic):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrInsufficientData):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// downloadName turns a topic into a safe filename stem.
func downloadName(topic string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, strings.ToLower(topic))
	for strings.Contains(stem, "--") {
		stem = strings.ReplaceAll(stem, "--", "-")
	}
	stem = strings.Trim(stem, "-")
	if stem == "" {
		stem = "gaps"
	}
	if len(stem) > 60 {
		stem = stem[:60]
	}
	return "gaps-" + stem
}
