package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
)

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    domain.CodeMetrics
	}{
		{
			name:    "empty input",
			content: "",
			want:    domain.CodeMetrics{},
		},
		{
			name:    "typical snippet",
			content: "def hello():\n    print(\"hi\")\n\n# comment\n",
			want: domain.CodeMetrics{
				TotalLines:   4,
				CodeLines:    2,
				BlankLines:   1,
				CommentLines: 1,
				CommentRatio: 50.0,
			},
		},
		{
			name:    "no trailing newline",
			content: "x = 1",
			want: domain.CodeMetrics{
				TotalLines: 1,
				CodeLines:  1,
			},
		},
		{
			name:    "comments only means zero ratio",
			content: "# one\n# two\n",
			want: domain.CodeMetrics{
				TotalLines:   2,
				CommentLines: 2,
				CommentRatio: 0,
			},
		},
		{
			name:    "indented comment counts as comment",
			content: "    # shifted\ncode()\n",
			want: domain.CodeMetrics{
				TotalLines:   2,
				CodeLines:    1,
				CommentLines: 1,
				CommentRatio: 100.0,
			},
		},
		{
			name:    "ratio rounds to two decimals",
			content: "# c\na\nb\nc\n",
			want: domain.CodeMetrics{
				TotalLines:   4,
				CodeLines:    3,
				CommentLines: 1,
				CommentRatio: 33.33,
			},
		},
		{
			name:    "whitespace-only line is blank",
			content: "   \t\nreal()\n",
			want: domain.CodeMetrics{
				TotalLines:   2,
				CodeLines:    1,
				BlankLines:   1,
				CommentRatio: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeMetrics(tt.content))
		})
	}
}

func TestComputeMetricsPartition(t *testing.T) {
	// Every line lands in exactly one bucket.
	inputs := []string{
		"",
		"\n",
		"a\nb\nc",
		"# x\n\n  \ny\n#z",
		strings.Repeat("line\n# note\n\n", 50),
	}
	for _, in := range inputs {
		m := ComputeMetrics(in)
		assert.GreaterOrEqual(t, m.CodeLines, 0)
		assert.GreaterOrEqual(t, m.BlankLines, 0)
		assert.GreaterOrEqual(t, m.CommentLines, 0)
		assert.Equal(t, m.TotalLines, m.CodeLines+m.BlankLines+m.CommentLines)
	}
}
