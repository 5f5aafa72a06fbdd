package geocode

import (
	"context"
	"errors"

	"github.com/guidemate/guidemate/geo"
)

// ErrNotFound means the query resolved to no place. It is surfaced to the
// caller immediately; there is nothing to retry.
var ErrNotFound = errors.New("geocode: no result for query")

// Place is a resolved location.
type Place struct {
	Name     string         `json:"name,omitempty"`
	Street   string         `json:"street,omitempty"`
	City     string         `json:"city,omitempty"`
	Postcode string         `json:"postcode,omitempty"`
	Country  string         `json:"country,omitempty"`
	Coord    geo.Coordinate `json:"coord"`
}

// Geocoder resolves free-text queries to places and coordinates to the
// places around them.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (Place, error)
	Reverse(ctx context.Context, c geo.Coordinate) (Place, error)
}
