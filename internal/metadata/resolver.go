package metadata

import (
	"context"
	"log/slog"

	"cinetree/internal/films"
	"cinetree/internal/logging"
)

// Cache stores exact matches between runs so repeated resolutions skip
// provider traffic. Implementations must treat misses as (_, false, nil).
type Cache interface {
	Get(ctx context.Context, id films.Identity) (Metadata, bool, error)
	Put(ctx context.Context, id films.Identity, meta Metadata, source string) error
}

// Resolver tries providers strictly in order and accepts the first exact
// match. Cache faults are soft: a broken cache degrades to plain provider
// lookups with a warning rather than failing the run.
type Resolver struct {
	providers []Provider
	cache     Cache
	logger    *slog.Logger
}

// NewResolver constructs a resolver. The cache may be nil.
func NewResolver(logger *slog.Logger, cache Cache, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		cache:     cache,
		logger:    logging.NewComponentLogger(logger, "resolver"),
	}
}

// Resolve returns the metadata for the identity and whether any provider
// produced an exact match. A false result is the caller's cue to record a
// faulty entry and continue; a non-nil error aborts the whole batch.
func (r *Resolver) Resolve(ctx context.Context, id films.Identity) (Metadata, bool, error) {
	if r.cache != nil {
		meta, ok, err := r.cache.Get(ctx, id)
		if err != nil {
			r.logger.Warn("lookup cache read failed",
				logging.Args(logging.String("title", id.Title), logging.Int("year", id.Year), logging.Error(err))...)
		} else if ok {
			r.logger.Debug("lookup cache hit",
				logging.Args(logging.String("title", id.Title), logging.Int("year", id.Year))...)
			return meta, true, nil
		}
	}

	for _, provider := range r.providers {
		meta, outcome, err := provider.Lookup(ctx, id)
		if err != nil {
			return Metadata{}, false, err
		}
		if outcome != OutcomeExact {
			r.logger.Debug("provider fell through",
				logging.Args(
					logging.String(logging.FieldProvider, provider.Name()),
					logging.String("title", id.Title),
					logging.Int("year", id.Year),
					logging.String("outcome", outcome.String()),
				)...)
			continue
		}

		meta = meta.Trim()
		if r.cache != nil {
			if err := r.cache.Put(ctx, id, meta, provider.Name()); err != nil {
				r.logger.Warn("lookup cache write failed",
					logging.Args(logging.String("title", id.Title), logging.Int("year", id.Year), logging.Error(err))...)
			}
		}
		return meta, true, nil
	}
	return Metadata{}, false, nil
}
