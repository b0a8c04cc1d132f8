package geo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	require.Equal(t, 0.0, Distance(0.329, 32.614, 0.329, 32.614))
}

func TestDistanceOneDegreeLongitudeAtEquator(t *testing.T) {
	// One degree of longitude on the equator is ~111.19 km for a
	// 6371 km sphere.
	d := Distance(0, 0, 0, 1)
	require.InDelta(t, 111.19, d, 0.01)
}

func TestDistanceSymmetry(t *testing.T) {
	a := Distance(0.3293, 32.6144, 0.3350, 32.6200)
	b := Distance(0.3350, 32.6200, 0.3293, 32.6144)
	require.InDelta(t, a, b, 1e-9)
}

func TestWithinRadius(t *testing.T) {
	office := Location{Latitude: 0.32936393472140163, Longitude: 32.614417541438584, RadiusKm: 0.5}

	ok, dist := office.WithinRadius(office.Latitude, office.Longitude)
	require.True(t, ok)
	require.Zero(t, dist)

	// ~0.11 km north of the office.
	ok, dist = office.WithinRadius(office.Latitude+0.001, office.Longitude)
	require.True(t, ok)
	require.Less(t, dist, 0.5)

	// ~1.1 km north of the office.
	ok, dist = office.WithinRadius(office.Latitude+0.01, office.Longitude)
	require.False(t, ok)
	require.Greater(t, dist, 1.0)
}
