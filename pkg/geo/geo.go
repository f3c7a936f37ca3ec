package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKM = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat  float64
	Long float64
}

// ParseLocation parses the "lat,long" encoding stored on listings.
func ParseLocation(s string) (Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("location %q is not in lat,long form", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	if lat < -90 || lat > 90 || long < -180 || long > 180 {
		return Point{}, fmt.Errorf("location %q is out of range", s)
	}

	return Point{Lat: lat, Long: long}, nil
}

// DistanceKM returns the haversine great-circle distance between two points.
func DistanceKM(a, b Point) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLong := radians(b.Long - a.Long)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLong/2)*math.Sin(dLong/2)

	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// WithinRadius reports whether p lies inside the circle around center.
func WithinRadius(p, center Point, radiusKM float64) bool {
	return DistanceKM(p, center) <= radiusKM
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
