package render

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jimtonn/foldout/pkg/cache"
	"github.com/jimtonn/foldout/pkg/errors"
	"github.com/jimtonn/foldout/pkg/observability"
	"github.com/jimtonn/foldout/pkg/outline"
	"github.com/jimtonn/foldout/pkg/render/nodelink"
)

// DefaultTTL is how long rendered diagrams stay cached.
const DefaultTTL = 7 * 24 * time.Hour

// Options controls a single render.
type Options struct {
	Format   Format
	Detailed bool
}

// Result is a rendered diagram.
type Result struct {
	Data     []byte
	DOT      string
	CacheHit bool
	Duration time.Duration
}

// Runner renders outlines to diagrams, keeping rendered artifacts in a
// cache keyed by the generated DOT source. Cache failures never fail a
// render; they are logged and the diagram is produced from scratch.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	TTL    time.Duration
	Logger *log.Logger

	// Backoff governs cache lookups. Stores are attempted once.
	Backoff cache.Backoff

	// renderFn is replaced in tests to avoid running Graphviz.
	renderFn func(ctx context.Context, dot string, f Format) ([]byte, error)
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
		Cache:    c,
		Keyer:    keyer,
		TTL:      DefaultTTL,
		Logger:   logger,
		Backoff:  cache.DefaultBackoff,
		renderFn: graphvizRender,
	}
}

// Render draws o in the requested format. DOT output is returned directly
// and never cached.
func (r *Runner) Render(ctx context.Context, o *outline.Outline, opts Options) (*Result, error) {
	if opts.Format == "" {
		opts.Format = FormatSVG
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return nil, err
	}

	start := time.Now()
	dot := nodelink.ToDOT(o, nodelink.Options{Detailed: opts.Detailed})
	result := &Result{DOT: dot}
	if opts.Format == FormatDOT {
		result.Data = []byte(dot)
		result.Duration = time.Since(start)
		return result, nil
	}

	hooks := observability.Render()
	hooks.OnRenderStart(ctx, string(opts.Format), o.Len())

	key := r.Keyer.RenderKey(string(opts.Format), []byte(dot))
	if data, hit := r.lookup(ctx, key); hit {
		result.Data = data
		result.CacheHit = true
		result.Duration = time.Since(start)
		hooks.OnRenderComplete(ctx, string(opts.Format), result.Duration, nil)
		return result, nil
	}

	data, err := r.renderFn(ctx, dot, opts.Format)
	result.Duration = time.Since(start)
	hooks.OnRenderComplete(ctx, string(opts.Format), result.Duration, err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
	result.Data = data

	r.store(ctx, key, data)
	r.Logger.Debug("rendered diagram", "format", opts.Format, "rows", o.Len(), "bytes", len(data), "duration", result.Duration)
	return result, nil
}

func (r *Runner) lookup(ctx context.Context, key string) ([]byte, bool) {
	var (
		data []byte
		hit  bool
	)
	err := r.Backoff.Retry(ctx, func() error {
		var err error
		data, hit, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("cache lookup failed", "key", key, "error", err)
		return nil, false
	}
	if hit {
		observability.Cache().OnCacheHit(ctx, "render")
		r.Logger.Debug("cache hit", "key", key)
	} else {
		observability.Cache().OnCacheMiss(ctx, "render")
	}
	return data, hit
}

func (r *Runner) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache store failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "render", len(data))
}

func graphvizRender(ctx context.Context, dot string, f Format) ([]byte, error) {
	if f == FormatPNG {
		return nodelink.RenderPNG(ctx, dot)
	}
	return nodelink.RenderSVG(ctx, dot)
}
