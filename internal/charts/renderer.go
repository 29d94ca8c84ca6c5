package charts

import (
	"bytes"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"

	"gapdash.dashboardpro.org/internal/metrics"
)

// Renderer memoizes rendered SVG documents. The dataset is immutable for the
// life of the process, so a key uniquely identifies its output.
type Renderer struct {
	size  Size
	cache *lru.Cache[string, []byte]
	group singleflight.Group
}

func NewRenderer(cacheSize int, size Size) (*Renderer, error) {
	if cacheSize <= 0 {
		return nil, fmt.Errorf("render cache size must be positive, got %d", cacheSize)
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("error creating render cache: %w", err)
	}
	return &Renderer{size: size, cache: cache}, nil
}

// SVG returns the document cached under key, calling build and rendering its
// figure on a miss. Concurrent misses for one key share a single render.
func (r *Renderer) SVG(kind Kind, key string, build func() (Figure, error)) ([]byte, error) {
	cacheKey := string(kind) + "|" + key
	if svg, ok := r.cache.Get(cacheKey); ok {
		metrics.ChartRenders.WithLabelValues(string(kind), "hit").Inc()
		return svg, nil
	}

	resultI, err, _ := r.group.Do(cacheKey, func() (any, error) {
		if svg, ok := r.cache.Get(cacheKey); ok {
			return svg, nil
		}

		fig, err := build()
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := RenderSVG(&buf, fig, r.size); err != nil {
			return nil, fmt.Errorf("rendering %s chart: %w", kind, err)
		}

		svg := buf.Bytes()
		r.cache.Add(cacheKey, svg)
		return svg, nil
	})
	if err != nil {
		metrics.ChartRenders.WithLabelValues(string(kind), "error").Inc()
		return nil, err
	}

	svg, ok := resultI.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected type from render group: got %T", resultI)
	}
	metrics.ChartRenders.WithLabelValues(string(kind), "miss").Inc()
	return svg, nil
}

// Len reports the number of cached documents.
func (r *Renderer) Len() int {
	return r.cache.Len()
}
