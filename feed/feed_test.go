package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/guidemate/guidemate/geo"
)

func feedMessage(t *testing.T) []byte {
	t.Helper()
	ts := uint64(time.Now().Unix())
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(ts),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("entity-1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Vehicle:   &gtfsrtpb.VehicleDescriptor{Id: proto.String("bus-42")},
					Position:  &gtfsrtpb.Position{Latitude: proto.Float32(41.4), Longitude: proto.Float32(2.18)},
					Timestamp: proto.Uint64(ts),
				},
			},
			{
				// No position: must be skipped.
				Id:      proto.String("entity-2"),
				Vehicle: &gtfsrtpb.VehiclePosition{},
			},
			{
				// No vehicle descriptor: falls back to the entity id.
				Id: proto.String("entity-3"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Position: &gtfsrtpb.Position{Latitude: proto.Float32(41.5), Longitude: proto.Float32(2.19)},
				},
			},
		},
	}
	b, err := proto.Marshal(fm)
	if err != nil {
		t.Fatalf("marshal feed message: %v", err)
	}
	return b
}

type recordingSink struct {
	ids    []string
	coords []geo.Coordinate
}

func (r *recordingSink) OnVehicleLocation(id string, c geo.Coordinate) {
	r.ids = append(r.ids, id)
	r.coords = append(r.coords, c)
}

func TestPollerFetch(t *testing.T) {
	payload := feedMessage(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Second, &recordingSink{})
	samples, err := p.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[0].VehicleID != "bus-42" {
		t.Errorf("expected vehicle id bus-42, got %q", samples[0].VehicleID)
	}
	if samples[1].VehicleID != "entity-3" {
		t.Errorf("expected entity id fallback, got %q", samples[1].VehicleID)
	}
	// float32 positions survive the round trip within precision.
	if d := geo.DistanceMeters(samples[0].Coord, geo.Coordinate{Lat: 41.4, Lon: 2.18}); d > 1 {
		t.Errorf("position off by %.1f m", d)
	}
}

func TestPollerFetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := NewPoller(srv.URL, time.Second, &recordingSink{})
	if _, err := p.Fetch(context.Background()); err == nil {
		t.Error("expected an error on HTTP 503")
	}
}

func TestPollerRunForwardsToSink(t *testing.T) {
	payload := feedMessage(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	sink := &recordingSink{}
	p := NewPoller(srv.URL, 10*time.Millisecond, sink)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := p.Run(ctx); err != context.DeadlineExceeded {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if len(sink.ids) < 2 {
		t.Fatalf("expected forwarded samples, got %d", len(sink.ids))
	}
	if sink.ids[0] != "bus-42" {
		t.Errorf("unexpected first id %q", sink.ids[0])
	}
}
