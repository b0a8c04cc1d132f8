package geo

import "math"

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// Location is a point with a permitted check-in radius around it.
type Location struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// Distance returns the great-circle distance in kilometers between two
// coordinates given in degrees.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// WithinRadius reports whether the given point is inside the location's
// radius, along with the computed distance for display.
func (l Location) WithinRadius(lat, lon float64) (bool, float64) {
	d := Distance(lat, lon, l.Latitude, l.Longitude)
	return d <= l.RadiusKm, d
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
