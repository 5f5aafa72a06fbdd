package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"github.com/guidemate/guidemate/geo"
)

// Google is a Geocoder backed by the Google Maps Geocoding API.
type Google struct {
	client *maps.Client
}

// NewGoogle builds a Google geocoder from an API key.
func NewGoogle(apiKey string) (*Google, error) {
	c, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &Google{client: c}, nil
}

func (g *Google) Geocode(ctx context.Context, query string) (Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return Place{}, fmt.Errorf("google geocode: %w", err)
	}
	if len(results) == 0 {
		return Place{}, ErrNotFound
	}
	return placeFromResult(results[0]), nil
}

func (g *Google) Reverse(ctx context.Context, c geo.Coordinate) (Place, error) {
	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: c.Lat, Lng: c.Lon},
	})
	if err != nil {
		return Place{}, fmt.Errorf("google reverse geocode: %w", err)
	}
	if len(results) == 0 {
		return Place{}, ErrNotFound
	}
	return placeFromResult(results[0]), nil
}

func placeFromResult(r maps.GeocodingResult) Place {
	p := Place{
		Name: r.FormattedAddress,
		Coord: geo.Coordinate{
			Lat: r.Geometry.Location.Lat,
			Lon: r.Geometry.Location.Lng,
		},
	}
	for _, comp := range r.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "route":
				p.Street = comp.LongName
			case "locality":
				p.City = comp.LongName
			case "postal_code":
				p.Postcode = comp.LongName
			case "country":
				p.Country = comp.LongName
			}
		}
	}
	return p
}
