// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// GapRecord is one research-gap suggestion produced per surviving paper.
// Field order here is the stable export order for YAML and JSON.
type GapRecord struct {
	// Paper is the formatted "Author Year Title" line, with a DOI URL
	// suffix when the record carried a DOI.
	Paper string `json:"paper" yaml:"paper"`

	// Gap is the selected template statement, at most 25 words.
	Gap string `json:"gap" yaml:"gap"`

	// Keywords holds 3-5 lowercase search keywords.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Score is the heuristic novelty score in [1, 5].
	Score int `json:"score" yaml:"score"`

	// Note is "rethink" when Score < 3, empty otherwise.
	Note string `json:"note" yaml:"note"`

	// Q1 is the heuristic top-quartile-journal guess.
	Q1 bool `json:"q1" yaml:"q1"`

	// NextSteps suggests concrete follow-up work, at most 50 words.
	NextSteps string `json:"next_steps" yaml:"next_steps"`
}

// NeedsRethink reports whether the score falls below the rethink threshold.
func (g GapRecord) NeedsRethink() bool { return g.Score < 3 }
