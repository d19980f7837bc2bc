package fabrication

import (
	"context"
	"errors"

	"github.com/rshade/greenroi/internal/engine/cache"
	"github.com/rshade/greenroi/internal/greenops"
	"github.com/rshade/greenroi/internal/logging"
)

// Endpointer is implemented by sources whose answers depend on a location,
// so cache keys change when the location does.
type Endpointer interface {
	Endpoint() string
}

// CachedSource answers from a FileStore and asks Inner on a miss.
type CachedSource struct {
	Inner Source
	Store *cache.FileStore
}

// NewCachedSource wraps inner with store.
func NewCachedSource(inner Source, store *cache.FileStore) *CachedSource {
	return &CachedSource{Inner: inner, Store: store}
}

// Name implements Source.
func (c *CachedSource) Name() string { return c.Inner.Name() }

// EmbodiedKg implements Source. Cache read and write failures are logged
// and otherwise ignored.
func (c *CachedSource) EmbodiedKg(ctx context.Context, cat greenops.DeviceCategory) (float64, error) {
	log := logging.FromContext(ctx)
	key := c.key(cat)

	entry, err := c.Store.Get(key)
	switch {
	case err == nil:
		var kg float64
		if decodeErr := entry.Decode(&kg); decodeErr == nil {
			log.Debug().
				Str("component", "fabrication").
				Str("category", string(cat)).
				Float64("kg", kg).
				Msg("embodied CO2 cache hit")
			return kg, nil
		}
	case errors.Is(err, cache.ErrNotFound), errors.Is(err, cache.ErrExpired):
	default:
		log.Warn().Str("component", "fabrication").Err(err).Msg("reading fabrication cache")
	}

	kg, err := c.Inner.EmbodiedKg(ctx, cat)
	if err != nil {
		return 0, err
	}
	if putErr := c.Store.Put(key, c.Inner.Name(), kg); putErr != nil {
		log.Warn().Str("component", "fabrication").Err(putErr).Msg("writing fabrication cache")
	}
	return kg, nil
}

func (c *CachedSource) key(cat greenops.DeviceCategory) string {
	p := cache.KeyParams{Source: c.Inner.Name(), Subject: string(cat)}
	if e, ok := c.Inner.(Endpointer); ok {
		p.Endpoint = e.Endpoint()
	}
	return cache.GenerateKey(p)
}
