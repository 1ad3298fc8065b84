package boundary

import (
	"errors"
	"path/filepath"
	"testing"

	"go-roadwatch/types"
)

func loadTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(
		filepath.Join("testdata", "gadm41_TEST_2.json"),
		filepath.Join("testdata", "gadm41_TEST_3.json"),
	)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

func TestCities(t *testing.T) {
	s := loadTestStore(t)

	cities := s.Cities()
	if len(cities) != 3 {
		t.Fatalf("got %d cities, want 3", len(cities))
	}

	// Display name is "TYPE_2 NAME_2", sorted by name: Kabupaten before Kota.
	if cities[0].Name != "Kabupaten Bandung" || cities[0].Code != "3204" {
		t.Errorf("cities[0] = %+v", cities[0])
	}
	if cities[2].Name != "Kota Bandung" || cities[2].Code != "3273" {
		t.Errorf("cities[2] = %+v", cities[2])
	}
}

func TestDistricts(t *testing.T) {
	s := loadTestStore(t)

	districts := s.Districts("3204")
	if len(districts) != 2 {
		t.Fatalf("got %d districts, want 2 (water body excluded)", len(districts))
	}
	for _, d := range districts {
		if d.Name == "Waduk Saguling" {
			t.Error("water body must not be listed as a district")
		}
	}

	// Prefix filter: Kota Bandung's district does not leak into 3204.
	if districts[0].Code[:4] != "3204" || districts[1].Code[:4] != "3204" {
		t.Errorf("district codes %s, %s must start with 3204", districts[0].Code, districts[1].Code)
	}
}

func TestFeatureByCode(t *testing.T) {
	s := loadTestStore(t)

	f, err := s.FeatureByCode(types.GranularityDistrict, "320401")
	if err != nil {
		t.Fatalf("FeatureByCode(320401): %v", err)
	}
	if f.DisplayName(types.GranularityDistrict) != "Cileunyi" {
		t.Errorf("display name = %q, want Cileunyi", f.DisplayName(types.GranularityDistrict))
	}

	if _, err := s.FeatureByCode(types.GranularityRegency, "9999"); !errors.Is(err, ErrFeatureNotFound) {
		t.Errorf("err = %v, want ErrFeatureNotFound", err)
	}
}

func TestLookup(t *testing.T) {
	s := loadTestStore(t)

	loc, err := s.Lookup(types.GranularityRegency, "3204")
	if err != nil {
		t.Fatalf("Lookup(3204): %v", err)
	}
	if loc.Name != "Kabupaten Bandung" || loc.Code != "3204" {
		t.Errorf("loc = %+v", loc)
	}
	if loc.Center.Longitude != 106.5 || loc.Center.Latitude != -6.5 {
		t.Errorf("center = %+v, want (106.5, -6.5)", loc.Center)
	}

	// Unknown code and degenerate geometry are different failures.
	if _, err := s.Lookup(types.GranularityRegency, "0000"); !errors.Is(err, ErrFeatureNotFound) {
		t.Errorf("unknown code err = %v, want ErrFeatureNotFound", err)
	}
	if _, err := s.Lookup(types.GranularityRegency, "3209"); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("empty geometry err = %v, want ErrNoGeometry", err)
	}
}

func TestHasRegionAndRegionName(t *testing.T) {
	s := loadTestStore(t)

	if !s.HasRegion(types.GranularityRegency, "3273") {
		t.Error("HasRegion(3273) = false")
	}
	if s.HasRegion(types.GranularityDistrict, "3273") {
		t.Error("regency code must not resolve at district granularity")
	}

	name, ok := s.RegionName(types.GranularityRegency, "3273")
	if !ok || name != "Kota Bandung" {
		t.Errorf("RegionName(3273) = %q, %v", name, ok)
	}
}
