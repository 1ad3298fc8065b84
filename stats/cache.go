package stats

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go-roadwatch/types"
)

// Cache layout: one hash per region (stats:<granularity>:<code> with fields
// nama/total/parah/sedang/ringan) plus a membership set of codes. Per-region
// hashes let ingest increment a single bucket with HIncrBy instead of
// rewriting a serialized blob. The cache is advisory: any redis error falls
// back to recomputing from the store.

func cacheSetKey(g types.Granularity) string {
	return "stats:" + string(g) + ":codes"
}

func cacheRegionKey(g types.Granularity, code string) string {
	return "stats:" + string(g) + ":" + code
}

func (e *Engine) readCache(ctx context.Context, g types.Granularity) (map[string]types.RegionStatsItem, bool) {
	if e.cache == nil {
		return nil, false
	}

	codes, err := e.cache.SMembers(ctx, cacheSetKey(g)).Result()
	if err != nil || len(codes) == 0 {
		return nil, false
	}

	items := make(map[string]types.RegionStatsItem, len(codes))
	for _, code := range codes {
		fields, err := e.cache.HGetAll(ctx, cacheRegionKey(g, code)).Result()
		if err != nil || len(fields) == 0 {
			// A region hash expired or was evicted independently of the
			// membership set; the cache is no longer coherent.
			e.logg.WithField("code", code).Warn("stats cache incoherent, recomputing")
			return nil, false
		}
		items[code] = types.RegionStatsItem{
			ID:   code,
			Nama: fields["nama"],
			Data: types.RegionStats{
				Total:  atoi(fields["total"]),
				Parah:  atoi(fields["parah"]),
				Sedang: atoi(fields["sedang"]),
				Ringan: atoi(fields["ringan"]),
			},
		}
	}
	return items, true
}

func (e *Engine) writeCache(ctx context.Context, g types.Granularity, items map[string]types.RegionStatsItem) {
	if e.cache == nil || len(items) == 0 {
		return
	}

	pipe := e.cache.TxPipeline()
	pipe.Del(ctx, cacheSetKey(g))
	for code, item := range items {
		key := cacheRegionKey(g, code)
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"nama", item.Nama,
			"total", item.Data.Total,
			"parah", item.Data.Parah,
			"sedang", item.Data.Sedang,
			"ringan", item.Data.Ringan,
		)
		pipe.SAdd(ctx, cacheSetKey(g), code)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		e.logg.WithError(err).Warn("failed to write stats cache")
	}
}

func (e *Engine) applyCache(ctx context.Context, g types.Granularity, r types.DamageReport) {
	if e.cache == nil {
		return
	}
	code, name := regionKey(r, g)
	if code == "" {
		return
	}

	// Only increment a warm cache. Touching a cold one would create a partial
	// aggregate that a later read mistakes for the full picture. The membership
	// set is WATCHed so an invalidation racing between the warm check and the
	// increments aborts the transaction instead of resurrecting a single-region
	// cache.
	setKey := cacheSetKey(g)
	key := cacheRegionKey(g, code)

	err := e.cache.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, setKey).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SAdd(ctx, setKey, code)
			pipe.HSetNX(ctx, key, "nama", name)
			pipe.HIncrBy(ctx, key, "total", 1)
			pipe.HIncrBy(ctx, key, severityField(r.Severity), 1)
			return nil
		})
		return err
	}, setKey)
	if errors.Is(err, redis.TxFailedErr) {
		// Lost the race with an invalidation; the next read recomputes.
		return
	}
	if err != nil {
		e.logg.WithError(err).Warn("failed to apply report to stats cache, invalidating")
		e.Invalidate(ctx)
	}
}

// Invalidate drops the cached aggregates at both granularities. The next read
// recomputes from the report store, which must reproduce the incremental state.
func (e *Engine) Invalidate(ctx context.Context) {
	if e.cache == nil {
		return
	}
	for _, g := range []types.Granularity{types.GranularityRegency, types.GranularityDistrict} {
		codes, err := e.cache.SMembers(ctx, cacheSetKey(g)).Result()
		if err != nil {
			continue
		}
		keys := make([]string, 0, len(codes)+1)
		for _, code := range codes {
			keys = append(keys, cacheRegionKey(g, code))
		}
		keys = append(keys, cacheSetKey(g))
		if err := e.cache.Del(ctx, keys...).Err(); err != nil {
			e.logg.WithError(err).Warn("failed to invalidate stats cache")
		}
	}
}

func severityField(s types.Severity) string {
	switch s {
	case types.SeveritySevere:
		return "parah"
	case types.SeverityModerate:
		return "sedang"
	default:
		return "ringan"
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
