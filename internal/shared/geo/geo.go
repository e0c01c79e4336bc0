package geo

import "math"

// Mean Earth radius in meters, per the haversine convention.
const earthRadiusM = 6371000

// Point is a WGS-84 latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Region is a circular geofence: a named center plus a radius in meters.
// A region whose radius or center is unset never contains anything.
type Region struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	RadiusM float64 `json:"radius_m"`
}

// DistanceMeters returns the great-circle distance between two points using
// the haversine formula.
func DistanceMeters(a, b Point) float64 {
	phi1 := a.Lat * math.Pi / 180
	phi2 := b.Lat * math.Pi / 180
	dPhi := (b.Lat - a.Lat) * math.Pi / 180
	dLambda := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusM * c
}

// FindContaining returns the first region whose circle strictly contains p,
// scanning in input order. A point exactly on a boundary is outside. Regions
// with an unset radius or center are skipped rather than treated as infinite.
func FindContaining(p Point, regions []Region) (Region, bool) {
	for _, r := range regions {
		if r.RadiusM <= 0 || (r.Lat == 0 && r.Lng == 0) {
			continue
		}
		if DistanceMeters(p, Point{Lat: r.Lat, Lng: r.Lng}) < r.RadiusM {
			return r, true
		}
	}
	return Region{}, false
}
