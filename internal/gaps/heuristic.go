// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gaps turns normalized paper records into templated research-gap
// suggestions with a heuristic novelty score. The scoring is keyword
// matching against a fixed catalog, not bibliometrics: the novelty score
// and the top-quartile guess are rule-of-thumb values.
package gaps

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/gap-hunter/pkg/types"
)

// template associates trigger keywords with a gap statement
// parameterized by the search topic.
type template struct {
	theme    string
	triggers []string
	gap      string // format string taking the topic
	expanded []string
}

// catalog is the fixed set of gap templates. Order matters: ties in
// trigger hit counts resolve to the earliest entry.
var catalog = []template{
	{
		theme:    "scalability",
		triggers: []string{"scalab", "deploy", "production", "real-world"},
		gap:      "Limited scalability of %s methods in real-world applications",
		expanded: []string{"performance", "efficiency", "distributed"},
	},
	{
		theme:    "interpretability",
		triggers: []string{"interpret", "explain", "black-box"},
		gap:      "Lack of interpretability in %s deep learning models",
		expanded: []string{"explainable", "transparency", "visualization"},
	},
	{
		theme:    "evaluation",
		triggers: []string{"evaluat", "benchmark", "dataset"},
		gap:      "Insufficient evaluation of %s across diverse datasets",
		expanded: []string{"benchmarking", "metrics", "validation"},
	},
	{
		theme:    "comparison",
		triggers: []string{"compar", "baseline", "state-of-the-art"},
		gap:      "Missing comparison with state-of-the-art %s methods",
		expanded: []string{"baseline", "state-of-art", "analysis"},
	},
	{
		theme:    "generalization",
		triggers: []string{"generaliz", "transfer", "domain"},
		gap:      "Limited generalization of %s across different domains",
		expanded: []string{"transfer", "adaptation", "robustness"},
	},
	{
		theme:    "complexity",
		triggers: []string{"complex", "comput", "resource"},
		gap:      "Computational complexity of %s not addressed",
		expanded: []string{"optimization", "computational", "resources"},
	},
	{
		theme:    "ethics",
		triggers: []string{"ethic", "fairness", "privacy"},
		gap:      "Ethical implications of %s applications understudied",
		expanded: []string{"fairness", "bias", "privacy"},
	},
	{
		theme:    "robustness",
		triggers: []string{"adversar", "robust", "attack"},
		gap:      "Robustness of %s to adversarial conditions unclear",
		expanded: []string{"security", "attacks", "defense"},
	},
}

// q1Indicators are journal-name substrings treated as top-quartile.
// A heuristic stand-in for real ranking data.
var q1Indicators = []string{
	"nature", "science", "cell", "lancet", "nejm", "jama",
	"ieee transactions", "acm transactions", "springer",
	"journal of machine learning research", "plos one",
}

// nextStepsTemplates each take three keywords and stay under 50 words.
var nextStepsTemplates = []string{
	"Design experiments using %s and %s methodologies. Collect datasets focusing on %s domains.",
	"Develop %s framework addressing %s limitations. Validate across %s scenarios.",
	"Implement %s solution incorporating %s techniques. Benchmark against %s baselines.",
}

const (
	minKeywords = 3
	maxKeywords = 5
)

// Heuristic selects gap templates and assigns novelty scores. The random
// source only decides ties where no trigger matches and which next-steps
// template to use; inject a seed for deterministic tests.
type Heuristic struct {
	rng *rand.Rand
	now time.Time
}

// New returns a Heuristic seeded from the clock when seed is zero.
func New(seed int64) *Heuristic {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Heuristic{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now(),
	}
}

// Analyze produces the full gap record for one paper.
func (h *Heuristic) Analyze(paper types.PaperRecord, topic string) types.GapRecord {
	tpl := h.selectTemplate(paper)
	gap := fmt.Sprintf(tpl.gap, topic)
	keywords := expandKeywords(tpl, topic)
	score := h.score(paper, gap)

	note := ""
	if score < 3 {
		note = "rethink"
	}

	return types.GapRecord{
		Paper:     FormatPaper(paper),
		Gap:       gap,
		Keywords:  keywords,
		Score:     score,
		Note:      note,
		Q1:        IsQ1(paper.Venue),
		NextSteps: h.nextSteps(keywords),
	}
}

// FormatPaper renders the "Author Year Title" line, with a DOI URL
// suffix when the record carries one.
func FormatPaper(paper types.PaperRecord) string {
	s := fmt.Sprintf("%s %d %s", paper.Author, paper.Year, paper.Title)
	if paper.DOI != "" {
		s += " https://doi.org/" + paper.DOI
	}
	return s
}

// selectTemplate counts trigger hits over the lowercased title+abstract
// and returns the best-scoring template. Ties resolve to catalog order;
// when nothing matches, one is chosen uniformly at random.
func (h *Heuristic) selectTemplate(paper types.PaperRecord) template {
	text := strings.ToLower(paper.Title + " " + paper.Abstract)

	best, bestHits := 0, 0
	for i, tpl := range catalog {
		hits := 0
		for _, trigger := range tpl.triggers {
			hits += strings.Count(text, trigger)
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}

	if bestHits == 0 {
		return catalog[h.rng.Intn(len(catalog))]
	}
	return catalog[best]
}

// expandKeywords builds 3-5 lowercase keywords: the first two topic
// words, then the template's expansion list, padded with a topic-derived
// filler when too few remain.
func expandKeywords(tpl template, topic string) []string {
	var keywords []string
	seen := make(map[string]bool)

	add := func(word string) {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" || seen[word] || len(keywords) >= maxKeywords {
			return
		}
		seen[word] = true
		keywords = append(keywords, word)
	}

	topicWords := strings.Fields(strings.ToLower(topic))
	for i := 0; i < len(topicWords) && i < 2; i++ {
		add(topicWords[i])
	}
	for _, word := range tpl.expanded {
		add(word)
	}

	if len(keywords) < minKeywords {
		filler := "research-related"
		if len(topicWords) > 0 {
			filler = topicWords[0] + "-related"
		}
		add(filler)
		add(tpl.theme)
	}
	return keywords
}

// score assigns the 1-5 novelty score: base 3, bumped by strong gap
// wording and by recency of the paper.
func (h *Heuristic) score(paper types.PaperRecord, gap string) int {
	score := 3
	gapLower := strings.ToLower(gap)

	for _, word := range []string{"limited", "lack", "insufficient"} {
		if strings.Contains(gapLower, word) {
			score++
			break
		}
	}
	for _, word := range []string{"unclear", "understudied"} {
		if strings.Contains(gapLower, word) {
			score++
			break
		}
	}

	switch {
	case paper.Year >= h.now.Year()-2:
		score++
	case paper.Year <= h.now.Year()-5:
		score--
	}

	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// IsQ1 guesses whether the venue is a top-quartile journal by substring
// match against known indicator names.
func IsQ1(venue string) bool {
	if venue == "" {
		return false
	}
	venueLower := strings.ToLower(venue)
	for _, indicator := range q1Indicators {
		if strings.Contains(venueLower, indicator) {
			return true
		}
	}
	return false
}

// nextSteps picks one follow-up template and fills it with the first
// three keywords.
func (h *Heuristic) nextSteps(keywords []string) string {
	tpl := nextStepsTemplates[h.rng.Intn(len(nextStepsTemplates))]
	return fmt.Sprintf(tpl, keywords[0], keywords[1], keywords[2])
}
