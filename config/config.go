package config

import (
	"os"
	"strconv"
)

// GeoBounds is the deployment's accepted coordinate window. Submissions outside
// it are rejected, never clamped.
type GeoBounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the window (inclusive).
func (b GeoBounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Config carries everything main needs to construct clients and wire handlers.
// All values come from the environment; defaults match the Jawa Barat deployment.
type Config struct {
	Port          string
	ProvinceCode  string
	ProvinceName  string
	Bounds        GeoBounds
	RegencyFile   string
	DistrictFile  string
	ImageBucket   string
	ClassifierURL string
	RedisAddr     string
	OpenAIKey     string
	MapsKey       string
}

// Load reads the environment into a Config. Callers load .env beforehand.
func Load() Config {
	return Config{
		Port:          envOr("PORT", "8080"),
		ProvinceCode:  envOr("PROVINCE_CODE", "32"),
		ProvinceName:  envOr("PROVINCE_NAME", "Jawa Barat"),
		RegencyFile:   envOr("BOUNDARY_REGENCY_FILE", "./choropleth/gadm41_JABAR_2.json"),
		DistrictFile:  envOr("BOUNDARY_DISTRICT_FILE", "./choropleth/gadm41_JABAR_3.json"),
		ImageBucket:   envOr("IMAGE_BUCKET", "road_damage_detection"),
		ClassifierURL: os.Getenv("CLASSIFIER_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDRESS"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		MapsKey:       os.Getenv("MAPS_CREDENTIALS"),
		Bounds: GeoBounds{
			MinLat: envFloatOr("BOUNDS_MIN_LAT", -8.0),
			MaxLat: envFloatOr("BOUNDS_MAX_LAT", -5.5),
			MinLon: envFloatOr("BOUNDS_MIN_LON", 106.0),
			MaxLon: envFloatOr("BOUNDS_MAX_LON", 109.0),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
