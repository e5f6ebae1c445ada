// Package cache provides key/value caching of computed layouts and rendered
// artifacts.
//
// # Backends
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for the API server
//
// # Keys
//
// A [Keyer] derives cache keys from content hashes and the options that
// influence the result, so a changed option never returns a stale layout:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.LayoutKey(cache.Hash(processJSON), cache.LayoutKeyOpts{...})
//
// Wrap a Keyer with [NewScopedKeyer] to isolate namespaces.
package cache

import (
	"context"
	"time"
)

// Cache is the storage interface shared by all backends.
// A miss is reported as (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by backends that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Default time-to-live values.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// =============================================================================
// Keys
// =============================================================================

// LayoutKeyOpts holds the layout options that affect the computed geometry.
type LayoutKeyOpts struct {
	HorizontalSpacing float64  `json:"hs"`
	VerticalSpacing   float64  `json:"vs"`
	CharWidth         float64  `json:"cw"`
	LabelMinWidth     float64  `json:"lmw"`
	LabelHeight       float64  `json:"lh"`
	LabelGap          float64  `json:"lg"`
	LabelTolerance    float64  `json:"lt"`
	LabelSlideSteps   int      `json:"ls"`
	BackEdgeClearance float64  `json:"bec"`
	SubProcessPadding float64  `json:"spp"`
	Toggles           []string `json:"toggles,omitempty"`
}

// ArtifactKeyOpts holds the render options that affect an artifact.
type ArtifactKeyOpts struct {
	Format  string  `json:"format"`
	Style   string  `json:"style,omitempty"`
	Padding float64 `json:"padding,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed for a process.
	LayoutKey(processHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the content hash together with the options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(processHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", processHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
