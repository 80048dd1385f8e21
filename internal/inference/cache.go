package inference

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"MandiPredict/internal/registry"
	"MandiPredict/pkg/logger"
)

// CacheOption configures Cache.
type CacheOption func(*Cache)

// WithWarmupSize sets the feature vector length used for the post-load
// warm-up inference. Zero disables the warm-up.
func WithWarmupSize(n int) CacheOption {
	return func(c *Cache) {
		c.warmupSize = n
	}
}

// WithLoadTimeout bounds how long a caller waits for a model load. Zero
// means the caller's context is the only bound.
func WithLoadTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		c.loadTimeout = d
	}
}

// WithCacheLogger sets the cache logger.
func WithCacheLogger(log *logger.Logger) CacheOption {
	return func(c *Cache) {
		c.log = log
	}
}

// Cache is the load-on-demand, memoize-once store of materialized models.
// A single-flight group guarantees at most one in-flight load per filename;
// concurrent callers for the same key share the one result. There is no
// eviction: growth is bounded by the artifact inventory.
type Cache struct {
	loader      Loader
	warmupSize  int
	loadTimeout time.Duration
	log         *logger.Logger

	mu     sync.RWMutex
	models map[string]Predictor
	group  singleflight.Group
}

// NewCache creates a model cache backed by the given loader.
func NewCache(loader Loader, opts ...CacheOption) *Cache {
	c := &Cache{
		loader:     loader,
		warmupSize: 10,
		log:        logger.Nop(),
		models:     make(map[string]Predictor),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrLoad returns the materialized model for the entry, loading it on
// first use. The context bounds only this caller's wait; an in-flight load
// keeps running for the benefit of later requests.
func (c *Cache) GetOrLoad(ctx context.Context, entry *registry.ModelEntry) (Predictor, error) {
	c.mu.RLock()
	model, ok := c.models[entry.Filename]
	c.mu.RUnlock()
	if ok {
		return model, nil
	}

	if c.loadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.loadTimeout)
		defer cancel()
	}

	ch := c.group.DoChan(entry.Filename, func() (interface{}, error) {
		return c.load(entry)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Predictor), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("model load wait: %w", ctx.Err())
	}
}

func (c *Cache) load(entry *registry.ModelEntry) (Predictor, error) {
	// Another waiter may have completed the load between our miss and the
	// singleflight admission.
	c.mu.RLock()
	model, ok := c.models[entry.Filename]
	c.mu.RUnlock()
	if ok {
		return model, nil
	}

	c.log.Info("loading model", logger.String("filename", entry.Filename))

	model, err := c.loader.Load(entry.Path)
	if err != nil {
		c.log.Warn("primary load failed, trying fallback",
			logger.String("filename", entry.Filename),
			logger.Error(err),
		)
		model, err = c.loader.LoadFallback(entry.Path)
	}
	if err != nil {
		entry.MarkLoadFailed()
		c.log.Error("model load failed",
			logger.String("filename", entry.Filename),
			logger.Error(err),
		)
		return nil, fmt.Errorf("%w: %s", ErrIncompatibleModel, entry.Filename)
	}

	if c.warmupSize > 0 {
		if _, err := model.Predict(make([]float32, c.warmupSize)); err != nil {
			entry.MarkLoadFailed()
			return nil, fmt.Errorf("%w: warm-up failed for %s", ErrIncompatibleModel, entry.Filename)
		}
	}

	c.mu.Lock()
	c.models[entry.Filename] = model
	c.mu.Unlock()
	entry.MarkLoaded()

	c.log.Info("model loaded", logger.String("filename", entry.Filename))
	return model, nil
}

// Len returns the number of materialized models.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}
