package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port        int      `yaml:"port" validate:"gt=0"`
	CORSOrigins []string `yaml:"corsOrigins"`
}

// GuidanceConfig contains the live-guidance tuning knobs
type GuidanceConfig struct {
	MarginMeters float64 `yaml:"marginMeters" validate:"gte=0"`
}

// GraphConfig points at the street network to load
type GraphConfig struct {
	Path string `yaml:"path"`
}

// GeocoderConfig selects and tunes the geocoding provider
type GeocoderConfig struct {
	Provider       string  `yaml:"provider" validate:"omitempty,oneof=photon google"`
	GoogleAPIKey   string  `yaml:"googleAPIKey"`
	RequestsPerSec float64 `yaml:"requestsPerSec" validate:"gte=0"`
	RedisAddr      string  `yaml:"redisAddr"`
	CacheTTLMin    int     `yaml:"cacheTTLMinutes" validate:"gte=0"`
}

// FeedConfig configures the optional GTFS-RT position source
type FeedConfig struct {
	VehiclePositionsURL string `yaml:"vehiclePositionsURL" validate:"omitempty,url"`
	PollIntervalMS      int    `yaml:"pollIntervalMS" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Guidance GuidanceConfig `yaml:"guidance"`
	Graph    GraphConfig    `yaml:"graph"`
	Geocoder GeocoderConfig `yaml:"geocoder"`
	Feed     FeedConfig     `yaml:"feed"`
}
