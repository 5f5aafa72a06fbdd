// Package geocode resolves place names to coordinates and back.
//
// Two providers are available: Photon (photon.komoot.io, the default, no API
// key needed) and Google Maps. CachedGeocoder wraps either with a Redis
// cache so repeated lookups of the same destination skip the upstream call.
package geocode
