package marketplace

import (
	"context"
	"errors"
)

// Common errors returned by marketplace stores.
var (
	// ErrToolNotFound is returned when a tool id is absent from the store.
	ErrToolNotFound = errors.New("marketplace: tool not found")

	// ErrInvalidID is returned when a tool id is empty.
	ErrInvalidID = errors.New("marketplace: invalid tool id")
)

// Key prefixes for per-user tool-id lists. The same keyed store tracks
// both "tools I published" and "tools I installed" under separate
// prefixes.
const (
	publishedPrefix = "published:"
	installedPrefix = "installed:"
)

// Store is the injectable persistence boundary for the marketplace: a
// keyed store of published tools plus per-user tool-id lists. Filter,
// sort, and pagination logic stay in the Marketplace service so that any
// backend preserves the operation contracts unchanged.
//
// Implementations must be safe for concurrent readers. The Marketplace
// service performs read-then-write sequences (download increments, rating
// recomputation) without cross-process coordination; deployments with
// concurrent writers to the same tool id need a backend with its own
// locking or a single writer.
type Store interface {
	// GetTool returns the entry for id, or ErrToolNotFound.
	GetTool(ctx context.Context, id string) (*Tool, error)

	// PutTool stores an entry keyed by its definition id, overwriting any
	// prior entry for that id.
	PutTool(ctx context.Context, t *Tool) error

	// ListTools returns all stored entries in unspecified order.
	ListTools(ctx context.Context) ([]*Tool, error)

	// GetUserTools returns the tool-id list stored under key, which
	// includes its prefix. A missing key yields an empty list.
	GetUserTools(ctx context.Context, key string) ([]string, error)

	// PutUserTools replaces the tool-id list stored under key.
	PutUserTools(ctx context.Context, key string, ids []string) error

	// Close releases backend resources.
	Close() error
}

// PublishedKey returns the per-user key tracking published tool ids.
func PublishedKey(userID string) string {
	return publishedPrefix + userID
}

// InstalledKey returns the per-user key tracking installed tool ids.
func InstalledKey(userID string) string {
	return installedPrefix + userID
}
