package marketplace

import (
	"time"

	"github.com/toolforge-ai/sdk/tool"
)

// Tool is a published tool definition plus catalog-only metadata.
// Entries are owned exclusively by the marketplace store; identity is the
// definition's id, one entry per id.
type Tool struct {
	// Definition is the frozen tool definition as published.
	Definition tool.Definition `json:"definition"`

	// PublishedAt is when the entry was first stored; UpdatedAt moves on
	// republish.
	PublishedAt time.Time `json:"published_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Downloads counts every install, including repeat installs by the
	// same user.
	Downloads int `json:"downloads"`

	// Rating is the arithmetic mean of all review ratings, 0 when there
	// are none.
	Rating float64 `json:"rating"`

	// Reviews in submission order.
	Reviews []Review `json:"reviews"`

	// Verified marks entries vetted by the catalog operator.
	Verified bool `json:"verified"`
}

// Review is one user's rating of a published tool.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // clamped to [1,5]
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SearchOptions select and page through published tools. Each filter is
// applied only when supplied; supplied filters compose as logical AND.
type SearchOptions struct {
	// Query is a case-insensitive substring match over name and
	// description.
	Query string

	// Category is an exact category match.
	Category string

	// Tags match any overlap with the tool's tag set.
	Tags []string

	// MinRating is an inclusive lower bound on the tool's rating.
	MinRating float64

	// Verified, when non-nil, is an exact match on the verified flag.
	Verified *bool

	// Expr is an optional CEL predicate over the variables id, name,
	// category, tags, downloads, rating, and verified, applied after the
	// other filters.
	Expr string

	// Offset and Limit page the sorted result set. Limit defaults to 20.
	Offset int
	Limit  int
}

// SearchResult is one page of tools plus the total filtered count before
// pagination.
type SearchResult struct {
	Tools []*Tool `json:"tools"`
	Total int     `json:"total"`
}
