package boundary

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go-roadwatch/types"
)

// ErrFeatureNotFound is returned when no boundary feature matches a code.
var ErrFeatureNotFound = errors.New("boundary: feature not found")

const waterBodyType = "WaterBody"

// featureProperties carries the GADM attributes we read. Level 2 is
// kabupaten/kota (CC_2), level 3 kecamatan (CC_3).
type featureProperties struct {
	CC2   string `json:"CC_2"`
	Name2 string `json:"NAME_2"`
	Type2 string `json:"TYPE_2"`
	CC3   string `json:"CC_3"`
	Name3 string `json:"NAME_3"`
	Type3 string `json:"TYPE_3"`
}

// Feature is one administrative region polygon from the reference dataset.
type Feature struct {
	Properties featureProperties `json:"properties"`
	Geometry   Geometry          `json:"geometry"`
}

// Code returns the region code at the feature's granularity.
func (f Feature) Code(g types.Granularity) string {
	if g == types.GranularityDistrict {
		return f.Properties.CC3
	}
	return f.Properties.CC2
}

// DisplayName is the human-readable name shown on the dashboard. Level-2 names
// include the region type prefix ("Kota Bandung" vs "Bandung" the kabupaten).
func (f Feature) DisplayName(g types.Granularity) string {
	if g == types.GranularityDistrict {
		return f.Properties.Name3
	}
	return strings.TrimSpace(f.Properties.Type2 + " " + f.Properties.Name2)
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Store is the read-only boundary reference loaded at startup.
type Store struct {
	regencies  []Feature
	districts  []Feature
	byRegency  map[string]int
	byDistrict map[string]int
}

// Load reads the level-2 and level-3 GADM files.
func Load(regencyFile, districtFile string) (*Store, error) {
	regencies, err := loadFeatures(regencyFile)
	if err != nil {
		return nil, fmt.Errorf("loading regency boundaries: %w", err)
	}
	districts, err := loadFeatures(districtFile)
	if err != nil {
		return nil, fmt.Errorf("loading district boundaries: %w", err)
	}

	s := &Store{
		regencies:  regencies,
		districts:  districts,
		byRegency:  make(map[string]int, len(regencies)),
		byDistrict: make(map[string]int, len(districts)),
	}
	for i, f := range regencies {
		if f.Properties.CC2 != "" {
			s.byRegency[f.Properties.CC2] = i
		}
	}
	for i, f := range districts {
		if f.Properties.CC3 != "" {
			s.byDistrict[f.Properties.CC3] = i
		}
	}
	return s, nil
}

func loadFeatures(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fc.Features, nil
}

// FeatureByCode resolves a region code to its boundary feature.
func (s *Store) FeatureByCode(g types.Granularity, code string) (Feature, error) {
	if g == types.GranularityDistrict {
		if i, ok := s.byDistrict[code]; ok {
			return s.districts[i], nil
		}
		return Feature{}, ErrFeatureNotFound
	}
	if i, ok := s.byRegency[code]; ok {
		return s.regencies[i], nil
	}
	return Feature{}, ErrFeatureNotFound
}

// HasRegion reports whether a code exists at the given granularity. The stats
// engine uses this to tell "region with zero reports" from "no such region".
func (s *Store) HasRegion(g types.Granularity, code string) bool {
	if g == types.GranularityDistrict {
		_, ok := s.byDistrict[code]
		return ok
	}
	_, ok := s.byRegency[code]
	return ok
}

// RegionName returns the display name for a code, if the code exists.
func (s *Store) RegionName(g types.Granularity, code string) (string, bool) {
	f, err := s.FeatureByCode(g, code)
	if err != nil {
		return "", false
	}
	return f.DisplayName(g), true
}

// Cities lists every kabupaten/kota, sorted by display name.
func (s *Store) Cities() []types.Location {
	cities := make([]types.Location, 0, len(s.regencies))
	for _, f := range s.regencies {
		if f.Properties.CC2 == "" {
			continue
		}
		cities = append(cities, types.Location{
			Code: f.Properties.CC2,
			Name: f.DisplayName(types.GranularityRegency),
		})
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities
}

// Districts lists the kecamatan under one kabupaten/kota. District codes carry
// the parent code as prefix ("3204" matches "320401", "320402", ...); water
// bodies in the dataset are not selectable districts.
func (s *Store) Districts(cityCode string) []types.Location {
	var districts []types.Location
	for _, f := range s.districts {
		cc3 := f.Properties.CC3
		if cc3 == "" || !strings.HasPrefix(cc3, cityCode) {
			continue
		}
		if f.Properties.Type3 == waterBodyType {
			continue
		}
		districts = append(districts, types.Location{
			Code: cc3,
			Name: f.Properties.Name3,
		})
	}
	sort.Slice(districts, func(i, j int) bool { return districts[i].Name < districts[j].Name })
	return districts
}
