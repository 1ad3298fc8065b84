package boundary

import (
	"encoding/json"
	"errors"
	"testing"
)

func geom(t *testing.T, geomType, coords string) Geometry {
	t.Helper()
	return Geometry{Type: geomType, Coordinates: json.RawMessage(coords)}
}

func TestCentroidBoundsSquare(t *testing.T) {
	// Single-ring square: vertices (106,-7) (107,-7) (107,-6) (106,-6).
	g := geom(t, "Polygon", `[[[106,-7],[107,-7],[107,-6],[106,-6]]]`)

	loc, err := CentroidBounds(g)
	if err != nil {
		t.Fatalf("CentroidBounds: %v", err)
	}

	if loc.Center.Longitude != 106.5 || loc.Center.Latitude != -6.5 {
		t.Errorf("center = (%v, %v), want (106.5, -6.5)", loc.Center.Longitude, loc.Center.Latitude)
	}
	if loc.Bounds.North != -6 || loc.Bounds.South != -7 || loc.Bounds.East != 107 || loc.Bounds.West != 106 {
		t.Errorf("bounds = %+v, want {North:-6 South:-7 East:107 West:106}", loc.Bounds)
	}
}

func TestCentroidBoundsMultiPolygon(t *testing.T) {
	// Two unit squares side by side; centroid is the mean over all 8 vertices.
	g := geom(t, "MultiPolygon", `[
		[[[106,-7],[107,-7],[107,-6],[106,-6]]],
		[[[108,-7],[109,-7],[109,-6],[108,-6]]]
	]`)

	loc, err := CentroidBounds(g)
	if err != nil {
		t.Fatalf("CentroidBounds: %v", err)
	}
	if loc.Center.Longitude != 107.5 || loc.Center.Latitude != -6.5 {
		t.Errorf("center = (%v, %v), want (107.5, -6.5)", loc.Center.Longitude, loc.Center.Latitude)
	}
	if loc.Bounds.East != 109 || loc.Bounds.West != 106 {
		t.Errorf("bounds = %+v, want East:109 West:106", loc.Bounds)
	}
}

func TestCentroidBoundsIncludesHoleRings(t *testing.T) {
	// Outer square plus an off-center hole ring. Hole vertices count toward
	// the mean, so the centroid shifts toward the hole.
	g := geom(t, "Polygon", `[
		[[106,-8],[108,-8],[108,-6],[106,-6]],
		[[107.5,-6.6],[107.6,-6.6],[107.6,-6.5],[107.5,-6.5]]
	]`)

	loc, err := CentroidBounds(g)
	if err != nil {
		t.Fatalf("CentroidBounds: %v", err)
	}

	// 8 vertices total: plain mean, not area-weighted.
	wantLon := (106.0 + 108 + 108 + 106 + 107.5 + 107.6 + 107.6 + 107.5) / 8
	if loc.Center.Longitude != wantLon {
		t.Errorf("center lon = %v, want %v", loc.Center.Longitude, wantLon)
	}
}

func TestPointsGeometryKinds(t *testing.T) {
	tests := []struct {
		name   string
		g      Geometry
		points int
	}{
		{"point", geom(t, "Point", `[107.6,-6.9]`), 1},
		{"linestring", geom(t, "LineString", `[[106,-7],[107,-6]]`), 2},
		{"polygon", geom(t, "Polygon", `[[[106,-7],[107,-7],[107,-6]]]`), 3},
		{"elevation ignored", geom(t, "Point", `[107.6,-6.9,120]`), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := tt.g.Points()
			if err != nil {
				t.Fatalf("Points: %v", err)
			}
			if len(pts) != tt.points {
				t.Errorf("got %d points, want %d", len(pts), tt.points)
			}
		})
	}
}

func TestPointsUnsupportedType(t *testing.T) {
	g := geom(t, "GeometryCollection", `[]`)
	if _, err := g.Points(); err == nil {
		t.Error("expected error for unsupported geometry type")
	}
}

func TestCentroidBoundsEmptyGeometry(t *testing.T) {
	g := Geometry{Type: "Polygon"}
	if _, err := CentroidBounds(g); !errors.Is(err, ErrNoGeometry) {
		t.Errorf("err = %v, want ErrNoGeometry", err)
	}
}
