package stats

import (
	"context"
	"errors"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go-roadwatch/types"
)

var (
	// ErrRegionNotFound: the code/name matches no region, which is different
	// from a region that exists but has zero reports.
	ErrRegionNotFound = errors.New("stats: region not found")
	// ErrAmbiguousName: two or more regions share the queried display name.
	ErrAmbiguousName = errors.New("stats: region name is ambiguous")
)

// ReportSource supplies the full report set for aggregation.
type ReportSource interface {
	GetAllReports(ctx context.Context) ([]types.DamageReport, error)
}

// RegionIndex answers whether a region code exists and what it is called,
// independent of whether any report mentions it. Backed by the boundary store.
type RegionIndex interface {
	HasRegion(g types.Granularity, code string) bool
	RegionName(g types.Granularity, code string) (string, bool)
}

// Engine computes severity-bucketed counts per administrative region at two
// granularities. regions and cache are optional: without regions, zero-report
// codes are indistinguishable from unknown ones and resolve to not-found;
// without cache every query recomputes from the source.
type Engine struct {
	source  ReportSource
	regions RegionIndex
	cache   *redis.Client
	logg    *logrus.Logger
}

func NewEngine(source ReportSource, regions RegionIndex, cache *redis.Client, logg *logrus.Logger) *Engine {
	if logg == nil {
		logg = logrus.New()
	}
	return &Engine{source: source, regions: regions, cache: cache, logg: logg}
}

// AggregateByRegency returns the per-kabupaten aggregates keyed by code.
func (e *Engine) AggregateByRegency(ctx context.Context) (map[string]types.RegionStatsItem, error) {
	return e.aggregateBy(ctx, types.GranularityRegency)
}

// AggregateByDistrict returns the per-kecamatan aggregates keyed by code.
// Computed independently of the regency view: a report may carry a regency
// code without a district code, so neither view sums from the other.
func (e *Engine) AggregateByDistrict(ctx context.Context) (map[string]types.RegionStatsItem, error) {
	return e.aggregateBy(ctx, types.GranularityDistrict)
}

func (e *Engine) aggregateBy(ctx context.Context, g types.Granularity) (map[string]types.RegionStatsItem, error) {
	if items, ok := e.readCache(ctx, g); ok {
		return items, nil
	}

	reports, err := e.source.GetAllReports(ctx)
	if err != nil {
		return nil, err
	}
	items := Aggregate(reports, g)
	e.writeCache(ctx, g, items)
	return items, nil
}

// Region returns one region's aggregate by exact code. A code the boundary
// reference knows but no report mentions yields a zero-count aggregate.
func (e *Engine) Region(ctx context.Context, g types.Granularity, code string) (types.RegionStatsItem, error) {
	items, err := e.aggregateBy(ctx, g)
	if err != nil {
		return types.RegionStatsItem{}, err
	}

	if item, ok := items[code]; ok {
		return item, nil
	}
	if e.regions != nil && e.regions.HasRegion(g, code) {
		name, _ := e.regions.RegionName(g, code)
		return types.RegionStatsItem{ID: code, Nama: name}, nil
	}
	return types.RegionStatsItem{}, ErrRegionNotFound
}

// RegionByName matches the display name case-insensitively and exactly, after
// trimming. No substring or fuzzy matching; a name shared by several codes is
// an ambiguous query, not a coin flip.
func (e *Engine) RegionByName(ctx context.Context, g types.Granularity, name string) (types.RegionStatsItem, error) {
	items, err := e.aggregateBy(ctx, g)
	if err != nil {
		return types.RegionStatsItem{}, err
	}

	want := strings.TrimSpace(name)
	var found types.RegionStatsItem
	matches := 0
	for _, item := range items {
		if strings.EqualFold(strings.TrimSpace(item.Nama), want) {
			found = item
			matches++
		}
	}
	switch matches {
	case 0:
		return types.RegionStatsItem{}, ErrRegionNotFound
	case 1:
		return found, nil
	default:
		return types.RegionStatsItem{}, ErrAmbiguousName
	}
}

// Summary sums the regency-level aggregates into the province rollup.
func (e *Engine) Summary(ctx context.Context) (types.StatsSummary, error) {
	items, err := e.AggregateByRegency(ctx)
	if err != nil {
		return types.StatsSummary{}, err
	}
	return Summarize(items), nil
}

// ApplyReport folds a newly persisted report into the cached aggregates so a
// warm cache never needs a full recompute on ingest. With no cache (or a cold
// one) this is a no-op; the next read recomputes from the store.
func (e *Engine) ApplyReport(ctx context.Context, r types.DamageReport) {
	e.applyCache(ctx, types.GranularityRegency, r)
	e.applyCache(ctx, types.GranularityDistrict, r)
}
