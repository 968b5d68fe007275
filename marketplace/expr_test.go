package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolforge-ai/sdk/tool"
)

func exprEntry() *Tool {
	return &Tool{
		Definition: tool.Definition{
			ID:       "fetch",
			Name:     "Web Fetch",
			Category: "web",
			Tags:     []string{"http", "scraping"},
		},
		Downloads: 120,
		Rating:    4.5,
		Verified:  true,
	}
}

func TestCompileExpr(t *testing.T) {
	tests := []struct {
		name  string
		expr  string
		match bool
	}{
		{"downloads bound", "downloads > 100", true},
		{"downloads bound excludes", "downloads > 500", false},
		{"rating and verified", "rating >= 4.0 && verified", true},
		{"tag membership", `"scraping" in tags`, true},
		{"tag membership misses", `"graphql" in tags`, false},
		{"name prefix", `name.startsWith("Web")`, true},
		{"category equality", `category == "web"`, true},
		{"disjunction", `verified || downloads > 1000`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := compileExpr(tt.expr)
			require.NoError(t, err)

			match, err := pred(exprEntry())
			require.NoError(t, err)
			assert.Equal(t, tt.match, match)
		})
	}
}

func TestCompileExprErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		_, err := compileExpr("downloads >")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid search expression")
	})

	t.Run("unknown variable", func(t *testing.T) {
		_, err := compileExpr("price > 10")
		require.Error(t, err)
	})

	t.Run("non-boolean result", func(t *testing.T) {
		_, err := compileExpr("downloads + 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bool")
	})
}
