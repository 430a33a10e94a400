package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabinetry/pkg/cabinet"
	"github.com/matzehuels/cabinetry/pkg/cache"
	"github.com/matzehuels/cabinetry/pkg/io"
	"github.com/matzehuels/cabinetry/pkg/observability"
)

// Runner renders designs through an artifact cache.
//
// The Runner holds no per-render state, so the web server shares one
// across workspaces.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Render produces the requested artifacts for c, serving them from the
// cache when every format is already stored.
func (r *Runner) Render(ctx context.Context, c *cabinet.Cabinet, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	res, err := r.render(ctx, c, opts)
	if res != nil {
		res.Duration = time.Since(start)
	}
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", res.CacheHit,
		"duration", res.Duration)
	return res, nil
}

func (r *Runner) render(ctx context.Context, c *cabinet.Cabinet, opts Options) (*Result, error) {
	design, err := io.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("serialize design for cache key: %w", err)
	}
	res := &Result{
		Artifacts:  make(map[string][]byte, len(opts.Formats)),
		DesignHash: cache.Hash(design),
	}

	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(res.DesignHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil {
				r.Logger.Debug("cache read failed", "format", format, "error", err)
			}
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, format)
				break
			}
			observability.Cache().OnCacheHit(ctx, format)
			res.Artifacts[format] = data
		}
		if len(res.Artifacts) == len(uniq(opts.Formats)) {
			res.CacheHit = true
			return res, nil
		}
	}

	rendered, err := Render(c, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = rendered

	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(res.DesignHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return res, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func uniq(formats []string) map[string]bool {
	set := make(map[string]bool, len(formats))
	for _, f := range formats {
		set[f] = true
	}
	return set
}
