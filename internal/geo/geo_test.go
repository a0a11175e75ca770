package geo_test

import (
	"testing"

	"go-absensi/internal/geo"

	"github.com/stretchr/testify/assert"
)

var school = geo.Coordinates{Latitude: 4.3315, Longitude: 97.4695}

func TestDistance_Symmetric(t *testing.T) {
	points := []geo.Coordinates{
		school,
		{Latitude: 4.3330, Longitude: 97.4710},
		{Latitude: -6.2088, Longitude: 106.8456},
		{Latitude: 51.5007, Longitude: -0.1246},
		{Latitude: 0, Longitude: 0},
		{Latitude: -89.9, Longitude: 179.9},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, geo.Distance(a, a))
		for _, b := range points {
			assert.InDelta(t, geo.Distance(a, b), geo.Distance(b, a), 1e-9)
		}
	}
}

func TestDistance_KnownValues(t *testing.T) {
	// satu derajat lintang ~ 111.19 km
	d := geo.Distance(geo.Coordinates{Latitude: 0, Longitude: 0}, geo.Coordinates{Latitude: 1, Longitude: 0})
	assert.InDelta(t, 111.195, d, 0.01)

	// Jakarta -> Banda Aceh
	d = geo.Distance(
		geo.Coordinates{Latitude: -6.2088, Longitude: 106.8456},
		geo.Coordinates{Latitude: 5.5483, Longitude: 95.3238},
	)
	assert.InDelta(t, 1828.8, d, 1)
}

func TestGeofence_Evaluate(t *testing.T) {
	fence := geo.Geofence{Center: school, RadiusKm: 0.5}

	tests := []struct {
		name   string
		point  geo.Coordinates
		within bool
	}{
		{"at school", school, true},
		{"about 220 m north", geo.Coordinates{Latitude: 4.3335, Longitude: 97.4695}, true},
		{"about 1.1 km north", geo.Coordinates{Latitude: 4.3415, Longitude: 97.4695}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			distance, within := fence.Evaluate(tt.point)
			assert.Equal(t, tt.within, within)
			assert.Equal(t, distance <= fence.RadiusKm, within)
		})
	}
}

func TestGeofence_BoundaryIsInclusive(t *testing.T) {
	point := geo.Coordinates{Latitude: 4.3360, Longitude: 97.4695}
	d := geo.Distance(point, school)

	_, within := geo.Geofence{Center: school, RadiusKm: d}.Evaluate(point)
	assert.True(t, within)
}
