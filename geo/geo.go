package geo

import (
	"fmt"
	"math"
)

const earthRadiusM = 6371000.0

// Coordinate is a (latitude, longitude) pair in WGS84 degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// DistanceMeters returns the haversine great-circle distance between a and b.
func DistanceMeters(a, b Coordinate) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	la1 := a.Lat * math.Pi / 180
	la2 := b.Lat * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusM * c
}

// Bearing returns the initial compass bearing in degrees [0, 360) to travel
// from the first point toward the second along a great circle.
func Bearing(from, to Coordinate) float64 {
	la1 := from.Lat * math.Pi / 180
	la2 := to.Lat * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180
	y := math.Sin(dLon) * math.Cos(la2)
	x := math.Cos(la1)*math.Sin(la2) - math.Sin(la1)*math.Cos(la2)*math.Cos(dLon)
	deg := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}

// TurnAngle returns the signed turn angle in degrees at via, entering from
// `from` and leaving toward `to`. The result lies in (-180, 180]; positive
// means a right turn, negative a left turn.
//
// Degenerate when from == via or via == to (zero-length bearing); the result
// for such inputs is unspecified.
func TurnAngle(from, via, to Coordinate) float64 {
	angle := Bearing(via, to) - Bearing(from, via)
	if math.Abs(angle) < 180 {
		return angle
	}
	if angle < 0 {
		return angle + 360
	}
	return angle - 360
}

// Round5 returns the multiple of 5 nearest to n, splitting each bucket
// 0-2 down, 3-4 up: 756->755, 758->760, 802->800, 803->805.
func Round5(n float64) int {
	n5 := math.Floor(n/5) * 5
	if math.Mod(n, 5) <= 2 {
		return int(n5)
	}
	return int(n5) + 5
}
