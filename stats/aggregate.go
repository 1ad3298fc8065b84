package stats

import (
	"go-roadwatch/types"
)

// regionKey returns the code and display name of a report at one granularity.
func regionKey(r types.DamageReport, g types.Granularity) (code, name string) {
	if g == types.GranularityDistrict {
		return r.DistrictCode, r.DistrictName
	}
	return r.RegencyCode, r.RegencyName
}

// Aggregate partitions reports by region code in one linear pass. Reports with
// an empty code at this granularity are excluded, not bucketed synthetically.
// Severity is trusted as stored; it is never re-derived from the raw detector
// label here.
func Aggregate(reports []types.DamageReport, g types.Granularity) map[string]types.RegionStatsItem {
	items := make(map[string]types.RegionStatsItem)
	for _, r := range reports {
		Apply(items, r, g)
	}
	return items
}

// Apply counts one report into an aggregate map. Incremental maintenance and
// full recomputation share this function, which is what keeps the two paths
// equivalent.
func Apply(items map[string]types.RegionStatsItem, r types.DamageReport, g types.Granularity) {
	code, name := regionKey(r, g)
	if code == "" {
		return
	}

	item, ok := items[code]
	if !ok {
		item = types.RegionStatsItem{ID: code, Nama: name}
	}
	item.Data.Add(r.Severity)
	items[code] = item
}

// Summarize rolls an aggregate map up into the province-wide summary.
func Summarize(items map[string]types.RegionStatsItem) types.StatsSummary {
	var s types.StatsSummary
	for _, item := range items {
		s.Total += item.Data.Total
		s.Critical += item.Data.Parah
		s.Moderate += item.Data.Sedang
		s.Minor += item.Data.Ringan
	}
	return s
}
