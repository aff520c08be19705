package openweather

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownLocation is returned for location identifiers outside the
// registry. A client-input condition, distinct from provider failures.
var ErrUnknownLocation = errors.New("unknown coastal location")

// CoastalLocation is a monitored coastal site.
type CoastalLocation struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// coastalLocations is the registry of monitored sites. Identifiers are the
// public API surface of the live assessment path.
var coastalLocations = map[string]CoastalLocation{
	"new_york":      {ID: "new_york", Name: "New York City", Lat: 40.7128, Lon: -74.0060},
	"miami":         {ID: "miami", Name: "Miami, FL", Lat: 25.7617, Lon: -80.1918},
	"boston":        {ID: "boston", Name: "Boston, MA", Lat: 42.3601, Lon: -71.0589},
	"san_francisco": {ID: "san_francisco", Name: "San Francisco, CA", Lat: 37.7749, Lon: -122.4194},
	"charleston":    {ID: "charleston", Name: "Charleston, SC", Lat: 32.7765, Lon: -79.9311},
}

// ResolveLocation maps a location identifier to its registered coordinates.
func ResolveLocation(id string) (CoastalLocation, error) {
	loc, ok := coastalLocations[id]
	if !ok {
		return CoastalLocation{}, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	return loc, nil
}

// Locations lists the registered location identifiers in stable order.
func Locations() []string {
	ids := make([]string, 0, len(coastalLocations))
	for id := range coastalLocations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
