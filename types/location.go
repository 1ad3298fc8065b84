package types

// Location is a {code, name} pair for a city or district listing.
type Location struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Center is a representative point for a region.
type Center struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Bounds is the coordinate-wise bounding box of a region's geometry.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// RegionLocation is the geo lookup result used to center and zoom the map.
type RegionLocation struct {
	Center Center `json:"center"`
	Bounds Bounds `json:"bounds"`
	Name   string `json:"name"`
	Code   string `json:"code"`
}
