package types

// RegionStats holds the severity breakdown for one region.
// Invariant: Total == Parah + Sedang + Ringan.
type RegionStats struct {
	Total  int `firestore:"total" json:"total"`
	Parah  int `firestore:"parah" json:"parah"`
	Sedang int `firestore:"sedang" json:"sedang"`
	Ringan int `firestore:"ringan" json:"ringan"`
}

// Add counts one report of the given severity.
func (s *RegionStats) Add(sev Severity) {
	s.Total++
	switch sev {
	case SeveritySevere:
		s.Parah++
	case SeverityModerate:
		s.Sedang++
	default:
		s.Ringan++
	}
}

// RegionStatsItem is the aggregate for one region at one granularity.
// ID is the region code; Nama is the denormalized display name.
type RegionStatsItem struct {
	ID   string      `firestore:"-" json:"id"`
	Nama string      `firestore:"nama" json:"nama"`
	Data RegionStats `firestore:"data" json:"data"`
}

// StatsSummary is the province-wide rollup. The English keys are the dashboard's
// summary contract and intentionally differ from the per-region Indonesian ones.
type StatsSummary struct {
	Total    int `json:"total"`
	Critical int `json:"critical"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
}
