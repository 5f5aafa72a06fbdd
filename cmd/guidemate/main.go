package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kr/pretty"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/guidemate/guidemate"
	"github.com/guidemate/guidemate/config"
	"github.com/guidemate/guidemate/feed"
	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/geocode"
	"github.com/guidemate/guidemate/graph"
	"github.com/guidemate/guidemate/route"
)

func main() {
	mode := flag.String("mode", "serve", "serve|plan")
	configPath := flag.String("config", "", "path to config.yml")
	graphPath := flag.String("graph", "", "street graph JSON (overrides config)")
	startLat := flag.Float64("startLat", 0, "plan mode: start latitude")
	startLon := flag.Float64("startLon", 0, "plan mode: start longitude")
	endLat := flag.Float64("endLat", 0, "plan mode: destination latitude")
	endLon := flag.Float64("endLon", 0, "plan mode: destination longitude")
	flag.Parse()

	guidemate.InitLogging()
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *graphPath != "" {
		cfg.Graph.Path = *graphPath
	}
	if cfg.Graph.Path == "" {
		log.Fatal("a street graph is required; set graph.path or -graph")
	}

	g, err := graph.LoadJSON(cfg.Graph.Path)
	if err != nil {
		log.Fatalf("graph: %v", err)
	}
	log.Printf("street graph loaded: %d nodes", g.NodeCount())

	switch *mode {
	case "serve":
		serve(cfg, g)
	case "plan":
		start := geo.Coordinate{Lat: *startLat, Lon: *startLon}
		end := geo.Coordinate{Lat: *endLat, Lon: *endLon}
		plan(g, start, end)
	default:
		log.Fatalf("unknown mode %q", *mode)
	}
}

func serve(cfg config.AppConfig, g *graph.MemoryGraph) {
	geocoder, err := buildGeocoder(cfg.Geocoder)
	if err != nil {
		log.Fatalf("geocoder: %v", err)
	}

	svc := guidemate.NewService(g, g, geocoder, cfg.Guidance.MarginMeters)
	server := guidemate.NewServer(svc, cfg.Server.Port, cfg.Server.CORSOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error { return server.Run(ctx) })

	if cfg.Feed.VehiclePositionsURL != "" {
		poller := feed.NewPoller(
			cfg.Feed.VehiclePositionsURL,
			time.Duration(cfg.Feed.PollIntervalMS)*time.Millisecond,
			svc.Store(),
		)
		group.Go(func() error {
			err := poller.Run(ctx)
			if err == context.Canceled {
				return nil
			}
			return err
		})
		log.Printf("vehicle positions feed: %s", cfg.Feed.VehiclePositionsURL)
	}

	if err := group.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("server shut down successfully")
}

func plan(g *graph.MemoryGraph, start, end geo.Coordinate) {
	srcNode, err := route.NearestNode(g, start)
	if err != nil {
		log.Fatalf("snap start: %v", err)
	}
	dstNode, err := route.NearestNode(g, end)
	if err != nil {
		log.Fatalf("snap destination: %v", err)
	}
	path, err := g.ShortestPath(srcNode, dstNode)
	if err != nil {
		log.Fatalf("shortest path: %v", err)
	}
	legs, err := route.BuildLegs(g, path, start, end)
	if err != nil {
		log.Fatalf("build legs: %v", err)
	}
	_, _ = pretty.Println(legs)
}

func buildGeocoder(cfg config.GeocoderConfig) (geocode.Geocoder, error) {
	var base geocode.Geocoder
	switch cfg.Provider {
	case "google":
		g, err := geocode.NewGoogle(cfg.GoogleAPIKey)
		if err != nil {
			return nil, err
		}
		base = g
	default:
		base = geocode.NewPhoton(geocode.WithPhotonRateLimit(cfg.RequestsPerSec, 1))
	}

	if cfg.RedisAddr == "" {
		return base, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	ttl := time.Duration(cfg.CacheTTLMin) * time.Minute
	return geocode.NewCachedGeocoder(base, rdb, ttl), nil
}
