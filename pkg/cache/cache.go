// Package cache stores rendered artifacts keyed by a hash of the design.
//
// # Overview
//
// Rendering a cabinet is deterministic: the same saved design always yields
// the same PNG, SVG or text. The render pipeline therefore hashes the
// design's JSON with [Hash] and looks the artifact up before drawing.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory; the CLI default
//   - [RedisCache]: a shared Redis instance for several web servers
//   - [NullCache]: stores nothing; used when caching is disabled
//
// # Keys
//
// A [Keyer] turns a design hash and render options into a cache key. Wrap
// it in [NewScopedKeyer] to give a deployment its own namespace in a shared
// Redis.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	Clear(ctx context.Context) error
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
	Font     string `json:"font,omitempty"`
	NoTitle  bool   `json:"no_title,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key for a rendered design.
	ArtifactKey(designHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256(designHash, opts)>".
func (DefaultKeyer) ArtifactKey(designHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", designHash, opts)
}
