// Package analyzer implements the review pipeline core: line metrics,
// the model prompt, response normalization, and report building.
package analyzer

import (
	"math"
	"strings"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
)

// commentPrefix is the single-line comment marker the metrics are built
// around. The prefix test is intentionally approximate and language
// agnostic; it does not parse per-language comment syntax.
const commentPrefix = "#"

// ComputeMetrics derives line-based statistics from raw source text.
// It never fails; empty input yields all-zero counts. A trailing newline
// does not count as an extra line. Each line lands in exactly one of the
// code/blank/comment buckets.
func ComputeMetrics(content string) domain.CodeMetrics {
	lines := strings.Split(content, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	var m domain.CodeMetrics
	m.TotalLines = len(lines)
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.BlankLines++
		case strings.HasPrefix(trimmed, commentPrefix):
			m.CommentLines++
		default:
			m.CodeLines++
		}
	}

	if m.CodeLines > 0 {
		ratio := float64(m.CommentLines) / float64(m.CodeLines) * 100
		m.CommentRatio = math.Round(ratio*100) / 100
	}
	return m
}
