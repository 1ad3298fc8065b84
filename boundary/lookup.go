package boundary

import (
	"errors"

	"go-roadwatch/types"
)

// ErrNoGeometry is returned for a known feature whose geometry has no vertices.
// Distinct from ErrFeatureNotFound so callers can report it separately.
var ErrNoGeometry = errors.New("boundary: feature has no geometry")

// Lookup resolves a region code to its representative center and bounding box.
func (s *Store) Lookup(g types.Granularity, code string) (types.RegionLocation, error) {
	feature, err := s.FeatureByCode(g, code)
	if err != nil {
		return types.RegionLocation{}, err
	}

	loc, err := CentroidBounds(feature.Geometry)
	if err != nil {
		return types.RegionLocation{}, err
	}
	loc.Name = feature.DisplayName(g)
	loc.Code = code
	return loc, nil
}

// CentroidBounds computes the arithmetic mean of all vertices and the
// coordinate-wise min/max. The mean is not an area-weighted centroid; it is
// good enough to center a map and cheap to compute over multipolygons.
func CentroidBounds(geom Geometry) (types.RegionLocation, error) {
	points, err := geom.Points()
	if err != nil {
		return types.RegionLocation{}, err
	}
	if len(points) == 0 {
		return types.RegionLocation{}, ErrNoGeometry
	}

	var sumLat, sumLon float64
	bounds := types.Bounds{
		North: points[0].Lat,
		South: points[0].Lat,
		East:  points[0].Lon,
		West:  points[0].Lon,
	}

	for _, pt := range points {
		sumLat += pt.Lat
		sumLon += pt.Lon
		if pt.Lat > bounds.North {
			bounds.North = pt.Lat
		}
		if pt.Lat < bounds.South {
			bounds.South = pt.Lat
		}
		if pt.Lon > bounds.East {
			bounds.East = pt.Lon
		}
		if pt.Lon < bounds.West {
			bounds.West = pt.Lon
		}
	}

	n := float64(len(points))
	return types.RegionLocation{
		Center: types.Center{
			Latitude:  sumLat / n,
			Longitude: sumLon / n,
		},
		Bounds: bounds,
	}, nil
}
