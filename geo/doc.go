// Package geo provides great-circle geometry over WGS84 coordinates:
// haversine distance, initial compass bearing, and the signed turn angle
// between two consecutive street segments.
//
// All functions are pure and safe for concurrent use.
package geo
