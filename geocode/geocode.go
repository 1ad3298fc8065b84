package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// NewMapsClient builds a Google Maps client from an API key. Injected into the
// ingestion path; a nil client just means reports carry no address.
func NewMapsClient(apiKey string) (*maps.Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps API key not set")
	}
	return maps.NewClient(maps.WithAPIKey(apiKey))
}

// ReverseGeocode resolves report coordinates to a formatted street address for
// display. Best-effort: an empty result is not an error worth failing a
// submission over, so callers treat any failure as "no address".
func ReverseGeocode(ctx context.Context, client *maps.Client, lat, lng float64) (string, error) {
	if client == nil {
		return "", fmt.Errorf("maps client not configured")
	}

	req := &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	}
	results, err := client.ReverseGeocode(ctx, req)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].FormattedAddress, nil
}
