package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/guidemate/guidemate/geo"
)

const defaultPhotonBaseURL = "https://photon.komoot.io"

// Photon is a Geocoder backed by the public photon.komoot.io service.
// Requests are rate-limited to stay within the service's fair-use policy.
type Photon struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// PhotonOption configures a Photon client.
type PhotonOption func(*Photon)

// WithPhotonBaseURL points the client at a different Photon instance.
func WithPhotonBaseURL(u string) PhotonOption {
	return func(p *Photon) { p.baseURL = u }
}

// WithPhotonRateLimit overrides the requests-per-second budget.
func WithPhotonRateLimit(rps float64, burst int) PhotonOption {
	return func(p *Photon) { p.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// NewPhoton returns a Photon client with a 10s timeout and a 1 req/s limit.
func NewPhoton(opts ...PhotonOption) *Photon {
	p := &Photon{
		baseURL:    defaultPhotonBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(1, 1),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// photonResponse is the GeoJSON FeatureCollection Photon returns.
type photonResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
		Properties struct {
			Name     string `json:"name"`
			Street   string `json:"street"`
			City     string `json:"city"`
			Postcode string `json:"postcode"`
			Country  string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

func (p *Photon) Geocode(ctx context.Context, query string) (Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")
	return p.fetch(ctx, "/api/?"+params.Encode())
}

func (p *Photon) Reverse(ctx context.Context, c geo.Coordinate) (Place, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%f", c.Lat))
	params.Set("lon", fmt.Sprintf("%f", c.Lon))
	return p.fetch(ctx, "/reverse?"+params.Encode())
}

func (p *Photon) fetch(ctx context.Context, path string) (Place, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return Place{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return Place{}, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("photon request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("photon: HTTP %d", resp.StatusCode)
	}

	var body photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Place{}, fmt.Errorf("photon response: %w", err)
	}
	if len(body.Features) == 0 {
		return Place{}, ErrNotFound
	}

	f := body.Features[0]
	if len(f.Geometry.Coordinates) < 2 {
		return Place{}, fmt.Errorf("photon response: malformed geometry")
	}
	return Place{
		Name:     f.Properties.Name,
		Street:   f.Properties.Street,
		City:     f.Properties.City,
		Postcode: f.Properties.Postcode,
		Country:  f.Properties.Country,
		Coord: geo.Coordinate{
			Lat: f.Geometry.Coordinates[1],
			Lon: f.Geometry.Coordinates[0],
		},
	}, nil
}
