// Package geo menghitung jarak great-circle dan memeriksa geofence sekolah.
package geo

import "math"

// EarthRadiusKm adalah jari-jari bumi yang dipakai rumus haversine.
const EarthRadiusKm = 6371.0

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Distance menghitung jarak great-circle (km) antara a dan b dengan rumus haversine.
func Distance(a, b Coordinates) float64 {
	dLat := deg2rad(b.Latitude - a.Latitude)
	dLon := deg2rad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Latitude))*math.Cos(deg2rad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Geofence adalah area lingkaran yang diizinkan di sekitar titik acuan.
type Geofence struct {
	Center   Coordinates
	RadiusKm float64
}

// Evaluate mengembalikan jarak c ke pusat geofence dan apakah c berada di dalam radius.
func (g Geofence) Evaluate(c Coordinates) (distanceKm float64, within bool) {
	distanceKm = Distance(c, g.Center)
	return distanceKm, distanceKm <= g.RadiusKm
}
