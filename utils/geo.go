package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in km.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// HaversineSQL is the same distance as a Postgres expression, parameterized
// as (lat, lon, lat). Used as a projected column for radius filtering/sorting.
func HaversineSQL(table string) string {
	return "(6371 * acos(LEAST(1.0, cos(radians(?)) * cos(radians(" + table + ".latitude)) * " +
		"cos(radians(" + table + ".longitude) - radians(?)) + " +
		"sin(radians(?)) * sin(radians(" + table + ".latitude)))))"
}
