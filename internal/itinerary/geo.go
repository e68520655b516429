package itinerary

import "math"

// AverageSpeedMPH is the single assumed average speed for every drive-time estimate.
const AverageSpeedMPH = 50.0

const earthRadiusMiles = 3958.8

// HaversineMiles calculates the great-circle distance between two points in miles.
func HaversineMiles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMiles * c
}

// StopDistance returns the great-circle distance between two stops in miles.
func StopDistance(a, b Stop) float64 {
	return HaversineMiles(a.Latitude, a.Longitude, b.Latitude, b.Longitude)
}

// DriveHours converts a distance to hours at the given speed.
func DriveHours(miles, speedMPH float64) float64 {
	if speedMPH <= 0 {
		return 0
	}
	return miles / speedMPH
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
