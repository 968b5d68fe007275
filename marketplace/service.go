package marketplace

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/toolforge-ai/sdk/tool"
)

// defaultLimit is the page size applied when a search supplies none.
const defaultLimit = 20

// Marketplace is the catalog service over an injected Store: publish,
// filterable paginated search, install tracking, and review submission
// with running average-rating recomputation.
//
// All filter, sort, and pagination logic lives here; the store is a plain
// keyed container, so swapping backends never changes operation
// semantics.
//
// Mutating operations are read-then-write sequences over the store, so
// they are serialized by a service-level mutex; a store shared between
// multiple Marketplace instances has no such protection.
type Marketplace struct {
	store   Store
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *marketplaceMetrics
	now     func() time.Time

	// mu serializes publish, install, and review write sequences.
	mu sync.Mutex
}

// marketplaceMetrics holds the counters recorded per operation.
type marketplaceMetrics struct {
	publishes metric.Int64Counter
	installs  metric.Int64Counter
	reviews   metric.Int64Counter
}

// Option configures a Marketplace.
type Option func(*Marketplace)

// WithLogger sets a custom logger. If not provided, slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Marketplace) {
		m.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer; each operation then runs
// inside a span carrying the tool id and outcome.
func WithTracer(tracer trace.Tracer) Option {
	return func(m *Marketplace) {
		m.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter used to count publishes,
// installs, and reviews. Instrument creation failures are logged and
// metrics stay disabled; operations are unaffected.
func WithMeter(meter metric.Meter) Option {
	return func(m *Marketplace) {
		metrics, err := newMarketplaceMetrics(meter)
		if err != nil {
			m.logger.Warn("marketplace metrics disabled", "error", err)
			return
		}
		m.metrics = metrics
	}
}

// withClock overrides the timestamp source in tests.
func withClock(now func() time.Time) Option {
	return func(m *Marketplace) {
		m.now = now
	}
}

// New creates a Marketplace over the given store.
func New(store Store, opts ...Option) *Marketplace {
	m := &Marketplace{
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func newMarketplaceMetrics(meter metric.Meter) (*marketplaceMetrics, error) {
	metrics := &marketplaceMetrics{}
	var err error

	metrics.publishes, err = meter.Int64Counter(
		"marketplace.publishes",
		metric.WithDescription("Number of tools published"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create publish counter: %w", err)
	}

	metrics.installs, err = meter.Int64Counter(
		"marketplace.installs",
		metric.WithDescription("Number of tool installs"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create install counter: %w", err)
	}

	metrics.reviews, err = meter.Int64Counter(
		"marketplace.reviews",
		metric.WithDescription("Number of reviews submitted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create review counter: %w", err)
	}

	return metrics, nil
}

// Publish stores a definition as a fresh catalog entry: zero downloads,
// zero rating, no reviews, unverified, public visibility forced on, both
// timestamps set to now. An existing entry under the same id is
// overwritten, discarding its prior downloads, rating, and reviews;
// republishing a changed tool is expected to carry a bumped version.
// The id is appended to the publisher's tracked list.
func (m *Marketplace) Publish(ctx context.Context, def *tool.Definition, publisherID string) (*Tool, error) {
	ctx, span := m.startSpan(ctx, "marketplace.publish", def.ID)
	defer endSpan(span)

	m.mu.Lock()
	defer m.mu.Unlock()

	published := *def
	published.IsPublic = true

	now := m.now()
	entry := &Tool{
		Definition:  published,
		PublishedAt: now,
		UpdatedAt:   now,
		Downloads:   0,
		Rating:      0,
		Reviews:     []Review{},
		Verified:    false,
	}

	if err := m.store.PutTool(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to publish tool %s: %w", def.ID, err)
	}

	key := PublishedKey(publisherID)
	ids, err := m.store.GetUserTools(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read publisher list: %w", err)
	}
	if err := m.store.PutUserTools(ctx, key, append(ids, def.ID)); err != nil {
		return nil, fmt.Errorf("failed to update publisher list: %w", err)
	}

	if m.metrics != nil {
		m.metrics.publishes.Add(ctx, 1,
			metric.WithAttributes(attribute.String("tool.category", def.Category)))
	}
	m.logger.Info("tool published", "tool", def.ID, "publisher", publisherID, "version", def.Version)

	return entry, nil
}

// Search applies the supplied filters in order — substring query over
// name and description, exact category, any-overlap tags, minimum
// rating, exact verified flag, then the optional CEL expression — each
// only when set, composed as logical AND. The filtered set is counted,
// sorted descending by downloads, then paged by offset and limit
// (defaults 0 and 20).
func (m *Marketplace) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	ctx, span := m.startSpan(ctx, "marketplace.search", "")
	defer endSpan(span)

	var predicate toolPredicate
	if opts.Expr != "" {
		var err error
		predicate, err = compileExpr(opts.Expr)
		if err != nil {
			return nil, err
		}
	}

	all, err := m.store.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	filtered := make([]*Tool, 0, len(all))
	for _, t := range all {
		if opts.Query != "" {
			q := strings.ToLower(opts.Query)
			name := strings.ToLower(t.Definition.Name)
			desc := strings.ToLower(t.Definition.Description)
			if !strings.Contains(name, q) && !strings.Contains(desc, q) {
				continue
			}
		}
		if opts.Category != "" && t.Definition.Category != opts.Category {
			continue
		}
		if len(opts.Tags) > 0 && !tagsOverlap(t.Definition.Tags, opts.Tags) {
			continue
		}
		if opts.MinRating > 0 && t.Rating < opts.MinRating {
			continue
		}
		if opts.Verified != nil && t.Verified != *opts.Verified {
			continue
		}
		if predicate != nil {
			match, err := predicate(t)
			if err != nil {
				return nil, err
			}
			if !match {
				continue
			}
		}
		filtered = append(filtered, t)
	}

	total := len(filtered)

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Downloads > filtered[j].Downloads
	})

	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	if offset >= len(filtered) {
		filtered = []*Tool{}
	} else {
		end := offset + limit
		if end > len(filtered) {
			end = len(filtered)
		}
		filtered = filtered[offset:end]
	}

	return &SearchResult{Tools: filtered, Total: total}, nil
}

// Install records one download of a tool: the global counter increments
// unconditionally (repeat installs by the same user still count), while
// the user's installed-list keeps set semantics. Returns ErrToolNotFound
// for an unknown id.
func (m *Marketplace) Install(ctx context.Context, toolID, userID string) error {
	ctx, span := m.startSpan(ctx, "marketplace.install", toolID)
	defer endSpan(span)

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.store.GetTool(ctx, toolID)
	if err != nil {
		return err
	}

	t.Downloads++
	if err := m.store.PutTool(ctx, t); err != nil {
		return fmt.Errorf("failed to record download for %s: %w", toolID, err)
	}

	key := InstalledKey(userID)
	ids, err := m.store.GetUserTools(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read installed list: %w", err)
	}
	if !contains(ids, toolID) {
		if err := m.store.PutUserTools(ctx, key, append(ids, toolID)); err != nil {
			return fmt.Errorf("failed to update installed list: %w", err)
		}
	}

	if m.metrics != nil {
		m.metrics.installs.Add(ctx, 1,
			metric.WithAttributes(attribute.String("tool.id", toolID)))
	}
	m.logger.Debug("tool installed", "tool", toolID, "user", userID, "downloads", t.Downloads)

	return nil
}

// AddReview appends a review and recomputes the tool's rating as the
// arithmetic mean of all review ratings. The submitted rating is clamped
// to [1,5]. Returns ErrToolNotFound for an unknown id.
func (m *Marketplace) AddReview(ctx context.Context, toolID, userID string, rating int, comment string) (*Review, error) {
	ctx, span := m.startSpan(ctx, "marketplace.add_review", toolID)
	defer endSpan(span)

	m.mu.Lock()
	defer m.mu.Unlock()

	t, err := m.store.GetTool(ctx, toolID)
	if err != nil {
		return nil, err
	}

	if rating < 1 {
		rating = 1
	} else if rating > 5 {
		rating = 5
	}

	review := Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: m.now(),
	}
	t.Reviews = append(t.Reviews, review)

	var sum int
	for _, r := range t.Reviews {
		sum += r.Rating
	}
	t.Rating = float64(sum) / float64(len(t.Reviews))

	if err := m.store.PutTool(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to store review for %s: %w", toolID, err)
	}

	if m.metrics != nil {
		m.metrics.reviews.Add(ctx, 1,
			metric.WithAttributes(attribute.String("tool.id", toolID)))
	}
	m.logger.Debug("review added", "tool", toolID, "user", userID, "rating", rating, "mean", t.Rating)

	return &review, nil
}

// InstalledTools returns the ids a user has installed, in install order.
func (m *Marketplace) InstalledTools(ctx context.Context, userID string) ([]string, error) {
	return m.store.GetUserTools(ctx, InstalledKey(userID))
}

// PublishedTools returns the ids a user has published, in publish order.
func (m *Marketplace) PublishedTools(ctx context.Context, userID string) ([]string, error) {
	return m.store.GetUserTools(ctx, PublishedKey(userID))
}

// GetTool returns one catalog entry by id.
func (m *Marketplace) GetTool(ctx context.Context, toolID string) (*Tool, error) {
	return m.store.GetTool(ctx, toolID)
}

func (m *Marketplace) startSpan(ctx context.Context, name, toolID string) (context.Context, trace.Span) {
	if m.tracer == nil {
		return ctx, nil
	}
	attrs := []attribute.KeyValue{}
	if toolID != "" {
		attrs = append(attrs, attribute.String("tool.id", toolID))
	}
	return m.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span) {
	if span != nil {
		span.End()
	}
}

// tagsOverlap reports whether any wanted tag appears in the tool's tags.
func tagsOverlap(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
