package geocode

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/guidemate/guidemate/geo"
)

const photonFeature = `{
	"features": [{
		"geometry": {"coordinates": [2.175050, 41.408366]},
		"properties": {
			"name": "Sagrada Familia",
			"street": "Carrer de Mallorca",
			"city": "Barcelona",
			"postcode": "08013",
			"country": "Spain"
		}
	}]
}`

func TestPhotonGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Sagrada Familia" {
			t.Errorf("unexpected query %q", q)
		}
		fmt.Fprint(w, photonFeature)
	}))
	defer srv.Close()

	p := NewPhoton(WithPhotonBaseURL(srv.URL), WithPhotonRateLimit(1000, 1000))
	place, err := p.Geocode(context.Background(), "Sagrada Familia")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if place.City != "Barcelona" || place.Country != "Spain" {
		t.Errorf("unexpected place %+v", place)
	}
	if place.Coord.Lat != 41.408366 || place.Coord.Lon != 2.175050 {
		t.Errorf("coordinates must come from GeoJSON [lon, lat]: %+v", place.Coord)
	}
}

func TestPhotonReverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/reverse" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("lat") == "" || r.URL.Query().Get("lon") == "" {
			t.Error("reverse lookup must pass lat and lon")
		}
		fmt.Fprint(w, photonFeature)
	}))
	defer srv.Close()

	p := NewPhoton(WithPhotonBaseURL(srv.URL), WithPhotonRateLimit(1000, 1000))
	place, err := p.Reverse(context.Background(), geo.Coordinate{Lat: 41.408366, Lon: 2.175050})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	if place.Street != "Carrer de Mallorca" {
		t.Errorf("unexpected place %+v", place)
	}
}

func TestPhotonNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"features": []}`)
	}))
	defer srv.Close()

	p := NewPhoton(WithPhotonBaseURL(srv.URL), WithPhotonRateLimit(1000, 1000))
	if _, err := p.Geocode(context.Background(), "nowhere at all"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPhotonServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewPhoton(WithPhotonBaseURL(srv.URL), WithPhotonRateLimit(1000, 1000))
	if _, err := p.Geocode(context.Background(), "anything"); err == nil {
		t.Error("expected an error on HTTP 502")
	}
}
