package boundary

import (
	"encoding/json"
	"fmt"
)

// Point is one vertex in WGS84.
type Point struct {
	Lat float64
	Lon float64
}

// Geometry is a tagged GeoJSON geometry. Coordinates stay raw until the type
// tag tells us their shape; decoding is then fully typed per kind instead of an
// untyped deep-array walk.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Points collects every vertex of the geometry. For polygons this includes
// hole rings: centroid and bounds are computed over all vertices, matching the
// dashboard's long-standing map-centering behavior.
func (g Geometry) Points() ([]Point, error) {
	if len(g.Coordinates) == 0 {
		return nil, nil
	}

	switch g.Type {
	case "Point":
		var pos []float64
		if err := json.Unmarshal(g.Coordinates, &pos); err != nil {
			return nil, fmt.Errorf("invalid Point coordinates: %w", err)
		}
		pt, ok := toPoint(pos)
		if !ok {
			return nil, nil
		}
		return []Point{pt}, nil

	case "MultiPoint", "LineString":
		var line [][]float64
		if err := json.Unmarshal(g.Coordinates, &line); err != nil {
			return nil, fmt.Errorf("invalid %s coordinates: %w", g.Type, err)
		}
		return collectLine(nil, line), nil

	case "MultiLineString", "Polygon":
		var rings [][][]float64
		if err := json.Unmarshal(g.Coordinates, &rings); err != nil {
			return nil, fmt.Errorf("invalid %s coordinates: %w", g.Type, err)
		}
		var pts []Point
		for _, ring := range rings {
			pts = collectLine(pts, ring)
		}
		return pts, nil

	case "MultiPolygon":
		var polys [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &polys); err != nil {
			return nil, fmt.Errorf("invalid MultiPolygon coordinates: %w", err)
		}
		var pts []Point
		for _, rings := range polys {
			for _, ring := range rings {
				pts = collectLine(pts, ring)
			}
		}
		return pts, nil

	default:
		return nil, fmt.Errorf("unsupported geometry type %q", g.Type)
	}
}

func collectLine(dst []Point, line [][]float64) []Point {
	for _, pos := range line {
		if pt, ok := toPoint(pos); ok {
			dst = append(dst, pt)
		}
	}
	return dst
}

// toPoint reads a GeoJSON position ([lon, lat, ...elevation ignored]).
func toPoint(pos []float64) (Point, bool) {
	if len(pos) < 2 {
		return Point{}, false
	}
	return Point{Lon: pos[0], Lat: pos[1]}, true
}
