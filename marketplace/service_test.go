package marketplace

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/toolforge-ai/sdk/tool"
)

// buildDefinition creates a minimal valid definition with the given id
// and category.
func buildDefinition(t *testing.T, id, name, category string, tags ...string) *tool.Definition {
	t.Helper()

	def, err := tool.NewBuilder().
		ID(id).
		Name(name).
		Description(fmt.Sprintf("The %s tool", name)).
		Category(category).
		Author(tool.Author{Name: "Test"}).
		Handler("executors." + id).
		Tag(tags...).
		Build()
	require.NoError(t, err)
	return def
}

func newTestMarketplace(t *testing.T) *Marketplace {
	t.Helper()

	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestPublish(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	def := buildDefinition(t, "echo", "Echo", "utility")
	entry, err := mkt.Publish(ctx, def, "u1")
	require.NoError(t, err)

	assert.Equal(t, 0, entry.Downloads)
	assert.Equal(t, 0.0, entry.Rating)
	assert.Empty(t, entry.Reviews)
	assert.False(t, entry.Verified)
	assert.True(t, entry.Definition.IsPublic, "publishing forces public visibility")
	assert.False(t, entry.PublishedAt.IsZero())
	assert.Equal(t, entry.PublishedAt, entry.UpdatedAt)

	// The definition handed in stays private; Publish works on a copy.
	assert.False(t, def.IsPublic)

	published, err := mkt.PublishedTools(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"echo"}, published)
}

func TestPublishOverwritesExistingEntry(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	def := buildDefinition(t, "echo", "Echo", "utility")
	_, err := mkt.Publish(ctx, def, "u1")
	require.NoError(t, err)

	require.NoError(t, mkt.Install(ctx, "echo", "u2"))
	_, err = mkt.AddReview(ctx, "echo", "u2", 5, "great")
	require.NoError(t, err)

	// Republishing the same id discards prior downloads, rating, reviews.
	again := buildDefinition(t, "echo", "Echo", "utility")
	entry, err := mkt.Publish(ctx, again, "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, entry.Downloads)
	assert.Equal(t, 0.0, entry.Rating)
	assert.Empty(t, entry.Reviews)

	stored, err := mkt.GetTool(ctx, "echo")
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Downloads)
}

func TestInstall(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	_, err := mkt.Publish(ctx, buildDefinition(t, "echo", "Echo", "utility"), "author")
	require.NoError(t, err)

	t.Run("unknown tool", func(t *testing.T) {
		err := mkt.Install(ctx, "missing", "u1")
		assert.ErrorIs(t, err, ErrToolNotFound)
	})

	t.Run("repeat installs increment globally but dedupe per user", func(t *testing.T) {
		require.NoError(t, mkt.Install(ctx, "echo", "u1"))
		require.NoError(t, mkt.Install(ctx, "echo", "u1"))

		entry, err := mkt.GetTool(ctx, "echo")
		require.NoError(t, err)
		assert.Equal(t, 2, entry.Downloads)

		installed, err := mkt.InstalledTools(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, []string{"echo"}, installed, "installed list has set semantics")
	})
}

func TestInstallConcurrent(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	_, err := mkt.Publish(ctx, buildDefinition(t, "echo", "Echo", "utility"), "author")
	require.NoError(t, err)

	const installs = 50
	var wg sync.WaitGroup
	for i := 0; i < installs; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, mkt.Install(ctx, "echo", fmt.Sprintf("u%d", n)))
		}(i)
	}
	wg.Wait()

	entry, err := mkt.GetTool(ctx, "echo")
	require.NoError(t, err)
	assert.Equal(t, installs, entry.Downloads, "no lost increments under concurrent installs")
}

func TestAddReview(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	_, err := mkt.Publish(ctx, buildDefinition(t, "echo", "Echo", "utility"), "author")
	require.NoError(t, err)

	t.Run("unknown tool", func(t *testing.T) {
		_, err := mkt.AddReview(ctx, "missing", "u1", 4, "")
		assert.ErrorIs(t, err, ErrToolNotFound)
	})

	t.Run("running mean", func(t *testing.T) {
		r1, err := mkt.AddReview(ctx, "echo", "u1", 5, "great")
		require.NoError(t, err)
		assert.NotEmpty(t, r1.ID)
		assert.Equal(t, 5, r1.Rating)

		r2, err := mkt.AddReview(ctx, "echo", "u2", 3, "ok")
		require.NoError(t, err)
		assert.NotEqual(t, r1.ID, r2.ID, "review ids are fresh per review")

		entry, err := mkt.GetTool(ctx, "echo")
		require.NoError(t, err)
		assert.Equal(t, 4.0, entry.Rating)
		require.Len(t, entry.Reviews, 2)

		_, err = mkt.AddReview(ctx, "echo", "u3", 1, "bad")
		require.NoError(t, err)

		entry, err = mkt.GetTool(ctx, "echo")
		require.NoError(t, err)
		assert.Equal(t, 3.0, entry.Rating)
	})

	t.Run("rating clamped", func(t *testing.T) {
		_, err := mkt.Publish(ctx, buildDefinition(t, "clamp", "Clamp", "utility"), "author")
		require.NoError(t, err)

		low, err := mkt.AddReview(ctx, "clamp", "u1", -3, "")
		require.NoError(t, err)
		assert.Equal(t, 1, low.Rating)

		high, err := mkt.AddReview(ctx, "clamp", "u2", 11, "")
		require.NoError(t, err)
		assert.Equal(t, 5, high.Rating)
	})
}

func TestSearchFilters(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	seed := []struct {
		id, name, category string
		tags               []string
		downloads          int
		ratings            []int
		verified           bool
	}{
		{"fetch", "Web Fetch", "web", []string{"http", "scraping"}, 50, []int{5, 5}, true},
		{"scrape", "Page Scraper", "web", []string{"scraping"}, 120, []int{3}, false},
		{"sheet", "Sheet Parser", "data", []string{"spreadsheet"}, 10, []int{4, 4}, true},
		{"calc", "Finance Calculator", "finance", nil, 0, nil, false},
	}
	for _, s := range seed {
		_, err := mkt.Publish(ctx, buildDefinition(t, s.id, s.name, s.category, s.tags...), "author")
		require.NoError(t, err)
		for i := 0; i < s.downloads; i++ {
			require.NoError(t, mkt.Install(ctx, s.id, fmt.Sprintf("u%d", i)))
		}
		for i, r := range s.ratings {
			_, err := mkt.AddReview(ctx, s.id, fmt.Sprintf("u%d", i), r, "")
			require.NoError(t, err)
		}
		if s.verified {
			entry, err := mkt.GetTool(ctx, s.id)
			require.NoError(t, err)
			entry.Verified = true
			require.NoError(t, mkt.store.PutTool(ctx, entry))
		}
	}

	t.Run("no filters returns everything", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Total)
		assert.Len(t, res.Tools, 4)
	})

	t.Run("query over name and description", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Query: "PARSER"})
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "sheet", res.Tools[0].Definition.ID)
	})

	t.Run("exact category", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Category: "web"})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		for _, got := range res.Tools {
			assert.Equal(t, "web", got.Definition.Category)
		}
	})

	t.Run("tag overlap", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Tags: []string{"scraping", "nonexistent"}})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("category and min rating compose", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Category: "web", MinRating: 4})
		require.NoError(t, err)
		require.Equal(t, 1, res.Total)
		assert.Equal(t, "fetch", res.Tools[0].Definition.ID)
	})

	t.Run("verified filter", func(t *testing.T) {
		verified := true
		res, err := mkt.Search(ctx, SearchOptions{Verified: &verified})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)

		unverified := false
		res, err = mkt.Search(ctx, SearchOptions{Verified: &unverified})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("sorted descending by downloads", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{})
		require.NoError(t, err)
		require.Len(t, res.Tools, 4)
		assert.Equal(t, "scrape", res.Tools[0].Definition.ID)
		assert.Equal(t, "fetch", res.Tools[1].Definition.ID)
		assert.Equal(t, "sheet", res.Tools[2].Definition.ID)
		assert.Equal(t, "calc", res.Tools[3].Definition.ID)
	})

	t.Run("pagination", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Offset: 1, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Total, "total counts the filtered set before paging")
		require.Len(t, res.Tools, 2)
		assert.Equal(t, "fetch", res.Tools[0].Definition.ID)
		assert.Equal(t, "sheet", res.Tools[1].Definition.ID)
	})

	t.Run("offset beyond result set", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Offset: 100})
		require.NoError(t, err)
		assert.Equal(t, 4, res.Total)
		assert.Empty(t, res.Tools)
	})

	t.Run("expression filter", func(t *testing.T) {
		res, err := mkt.Search(ctx, SearchOptions{Expr: `downloads > 40 && "scraping" in tags`})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
	})

	t.Run("invalid expression", func(t *testing.T) {
		_, err := mkt.Search(ctx, SearchOptions{Expr: `downloads >`})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "search expression")
	})
}

// TestCatalogScenario walks the publish/install/review flow end to end.
func TestCatalogScenario(t *testing.T) {
	mkt := newTestMarketplace(t)
	ctx := context.Background()

	_, err := mkt.Publish(ctx, buildDefinition(t, "echo", "Echo", "utility"), "author")
	require.NoError(t, err)

	require.NoError(t, mkt.Install(ctx, "echo", "u1"))
	require.NoError(t, mkt.Install(ctx, "echo", "u2"))

	entry, err := mkt.GetTool(ctx, "echo")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Downloads)

	_, err = mkt.AddReview(ctx, "echo", "u1", 5, "great")
	require.NoError(t, err)
	_, err = mkt.AddReview(ctx, "echo", "u2", 3, "ok")
	require.NoError(t, err)

	entry, err = mkt.GetTool(ctx, "echo")
	require.NoError(t, err)
	assert.Equal(t, 4.0, entry.Rating)
}

func TestMarketplaceObservability(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	mkt := New(store,
		WithTracer(tp.Tracer("test")),
		WithMeter(noop.NewMeterProvider().Meter("test")),
		withClock(func() time.Time { return fixed }),
	)
	ctx := context.Background()

	entry, err := mkt.Publish(ctx, buildDefinition(t, "echo", "Echo", "utility"), "u1")
	require.NoError(t, err)
	assert.Equal(t, fixed, entry.PublishedAt)

	require.NoError(t, mkt.Install(ctx, "echo", "u1"))
	review, err := mkt.AddReview(ctx, "echo", "u1", 4, "solid")
	require.NoError(t, err)
	assert.Equal(t, fixed, review.CreatedAt)
}

func TestStoreErrorsPropagate(t *testing.T) {
	mkt := New(&failingStore{})
	ctx := context.Background()

	_, err := mkt.Search(ctx, SearchOptions{})
	require.Error(t, err)

	def := buildDefinition(t, "echo", "Echo", "utility")
	_, err = mkt.Publish(ctx, def, "u1")
	require.Error(t, err)
}

// failingStore returns an error from every operation.
type failingStore struct{}

var errStore = errors.New("store unavailable")

func (f *failingStore) GetTool(ctx context.Context, id string) (*Tool, error) { return nil, errStore }
func (f *failingStore) PutTool(ctx context.Context, t *Tool) error            { return errStore }
func (f *failingStore) ListTools(ctx context.Context) ([]*Tool, error)        { return nil, errStore }
func (f *failingStore) GetUserTools(ctx context.Context, key string) ([]string, error) {
	return nil, errStore
}
func (f *failingStore) PutUserTools(ctx context.Context, key string, ids []string) error {
	return errStore
}
func (f *failingStore) Close() error { return nil }
