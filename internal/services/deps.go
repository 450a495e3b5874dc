package services

import (
	"context"

	"catalog/internal/cache"
	"catalog/internal/events"
	"catalog/internal/validation"

	"github.com/rs/zerolog"
)

// Deps holds the collaborators shared by every service. Nil fields get
// working defaults.
type Deps struct {
	Validator *validation.Validator
	Cache     cache.Cache
	Events    *events.Emitter
	Logger    zerolog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Validator == nil {
		d.Validator = validation.New()
	}
	if d.Cache == nil {
		d.Cache = cache.Noop{}
	}
	return d
}

// cached reads key into dst. Cache failures count as misses.
func (d Deps) cached(ctx context.Context, key string, dst any) bool {
	hit, err := d.Cache.Get(ctx, key, dst)
	if err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		return false
	}
	return hit
}

// remember fills key after a storage read. It never overwrites: a value
// written by refresh after a concurrent update wins over the older read.
func (d Deps) remember(ctx context.Context, key string, value any) {
	if err := d.Cache.Add(ctx, key, value); err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// refresh stores the committed state of a record after a write.
func (d Deps) refresh(ctx context.Context, key string, value any) {
	if err := d.Cache.Set(ctx, key, value); err != nil {
		d.Logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		d.forget(ctx, key)
	}
}

func (d Deps) forget(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := d.Cache.Delete(ctx, keys...); err != nil {
		d.Logger.Warn().Err(err).Strs("keys", keys).Msg("cache invalidation failed")
	}
}
