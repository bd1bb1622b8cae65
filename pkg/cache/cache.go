// Package cache provides pluggable byte caches for the expensive
// pipeline stages: cflow analysis output and rendered images.
//
// Three backends cover the deployment spectrum:
//   - file: persistent on-disk cache for CLI usage
//   - redis: shared cache for multi-instance deployments
//   - null: caching disabled
//
// Entries are opaque byte slices keyed by content hashes (see
// [AnalysisKey] and [RenderKey]), so a cache never returns stale data
// for changed inputs; TTLs only bound disk growth.
package cache

import (
	"context"
	"time"
)

// TTLs for the two cached stages. Keys are content-addressed, so these
// bound storage growth rather than freshness.
const (
	// AnalysisTTL applies to cached cflow output.
	AnalysisTTL = 7 * 24 * time.Hour

	// RenderTTL applies to cached rendered images, which are far more
	// expensive to recompute.
	RenderTTL = 30 * 24 * time.Hour
)

// Cache is the interface all cache backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
