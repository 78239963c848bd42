package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLocalKnownValues(t *testing.T) {
	origin := GeoPoint{Lon: 0, Lat: 0}

	// One degree of longitude at the equator.
	p := ToLocal(GeoPoint{Lon: 1, Lat: 0}, origin)
	assert.InDelta(t, EarthRadiusM*math.Pi/180, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-9)

	// Longitude shrinks with cos(lat) at a northern origin.
	origin60 := GeoPoint{Lon: 0, Lat: 60}
	p60 := ToLocal(GeoPoint{Lon: 1, Lat: 60}, origin60)
	assert.InDelta(t, p.X*math.Cos(60*math.Pi/180), p60.X, 1e-6)

	// Latitude is independent of the origin latitude.
	q := ToLocal(GeoPoint{Lon: 0, Lat: 61}, origin60)
	assert.InDelta(t, EarthRadiusM*math.Pi/180, q.Y, 1e-6)
}

func TestLocalRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		origin GeoPoint
		point  GeoPoint
	}{
		{"equator", GeoPoint{Lon: 0, Lat: 0}, GeoPoint{Lon: 0.3, Lat: -0.2}},
		{"chennai", GeoPoint{Lon: 80.24, Lat: 13.06}, GeoPoint{Lon: 80.18, Lat: 13.08}},
		{"negative lon", GeoPoint{Lon: -74.0, Lat: 40.7}, GeoPoint{Lon: -74.1, Lat: 40.65}},
		{"far north", GeoPoint{Lon: 18.07, Lat: 59.33}, GeoPoint{Lon: 18.2, Lat: 59.4}},
		{"same point", GeoPoint{Lon: 80.24, Lat: 13.06}, GeoPoint{Lon: 80.24, Lat: 13.06}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			back := ToGeo(ToLocal(tc.point, tc.origin), tc.origin)
			assert.InDelta(t, tc.point.Lon, back.Lon, 1e-9)
			assert.InDelta(t, tc.point.Lat, back.Lat, 1e-9)
		})
	}
}

func TestValidateOrigin(t *testing.T) {
	require.NoError(t, ValidateOrigin(GeoPoint{Lon: 80.24, Lat: 13.06}))
	require.NoError(t, ValidateOrigin(GeoPoint{Lon: 0, Lat: 89.9}))

	assert.ErrorIs(t, ValidateOrigin(GeoPoint{Lon: 0, Lat: 90}), ErrInvalidOrigin)
	assert.ErrorIs(t, ValidateOrigin(GeoPoint{Lon: 0, Lat: -90}), ErrInvalidOrigin)
	assert.ErrorIs(t, ValidateOrigin(GeoPoint{Lon: 0, Lat: 91}), ErrInvalidOrigin)
}
