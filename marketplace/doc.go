// Package marketplace is a catalog service for published tool
// definitions: publish, filterable paginated search, install tracking,
// and review submission with running average-rating recomputation.
//
// The service holds all filter, sort, and pagination logic; persistence
// is behind the Store interface, a plain keyed container with three
// interchangeable backends:
//
//   - MemoryStore: mutex-guarded maps, the in-process reference backend
//   - RedisStore: go-redis, for catalogs shared across processes
//   - SQLiteStore: a local database file, for durable single-node use
//
// # Operation contracts
//
// Publish wraps a definition with fresh catalog metadata (zero downloads
// and rating, no reviews, unverified, public visibility forced on) and
// stores it keyed by the definition id, overwriting any prior entry for
// that id. Search composes its supplied filters as logical AND, counts
// the filtered set, sorts descending by downloads, then pages with
// offset/limit (defaults 0/20). Install increments the download counter
// on every call while keeping the per-user installed list a set.
// AddReview clamps the rating into [1,5] and recomputes the tool rating
// as the arithmetic mean over all reviews.
//
//	store := marketplace.NewMemoryStore()
//	mkt := marketplace.New(store)
//
//	entry, err := mkt.Publish(ctx, def, "user-1")
//	result, err := mkt.Search(ctx, marketplace.SearchOptions{
//		Category:  "web",
//		MinRating: 4,
//	})
//
// Search also accepts an optional CEL expression for predicates the fixed
// filters cannot express, e.g. `downloads > 100 && "scraping" in tags`.
//
// No wire protocol is part of this package; a deployment exposing the
// catalog over a network must preserve the operation contracts above.
package marketplace
