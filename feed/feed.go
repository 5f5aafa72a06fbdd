package feed

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/guidemate/guidemate/geo"
)

// Sample is one vehicle position extracted from the feed.
type Sample struct {
	VehicleID string
	Coord     geo.Coordinate
	Timestamp int64
}

// Sink receives the position samples of each poll. The session store's
// update entry point satisfies this.
type Sink interface {
	OnVehicleLocation(vehicleID string, c geo.Coordinate)
}

// Poller periodically fetches a GTFS-RT VehiclePositions feed and forwards
// every entity with a position into the sink.
type Poller struct {
	url        string
	interval   time.Duration
	httpClient *http.Client
	sink       Sink
}

// NewPoller builds a poller for the given VehiclePositions URL.
func NewPoller(url string, interval time.Duration, sink Sink) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{
		url:        url,
		interval:   interval,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		sink:       sink,
	}
}

// Run polls until the context is cancelled. Fetch failures are logged and
// retried on the next tick; a dead feed must not kill the service.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		samples, err := p.Fetch(ctx)
		if err != nil {
			log.Printf("feed poll error: %v", err)
		} else {
			for _, s := range samples {
				p.sink.OnVehicleLocation(s.VehicleID, s.Coord)
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Fetch downloads and decodes the feed once.
func (p *Poller) Fetch(ctx context.Context) ([]Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", p.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, p.url)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decode(b)
}

func decode(b []byte) ([]Sample, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}

	var samples []Sample
	for _, e := range fm.Entity {
		v := e.GetVehicle()
		if v == nil || v.Position == nil {
			continue
		}
		id := v.GetVehicle().GetId()
		if id == "" {
			id = e.GetId()
		}
		samples = append(samples, Sample{
			VehicleID: id,
			Coord: geo.Coordinate{
				Lat: float64(v.Position.GetLatitude()),
				Lon: float64(v.Position.GetLongitude()),
			},
			Timestamp: int64(v.GetTimestamp()),
		})
	}
	return samples, nil
}
