package matching

import (
	"math"

	"github.com/carebridge/scheduler/pkg/core/model"
)

const (
	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// MaxDistanceKm is the distance at which the proximity score decays to 0.
	MaxDistanceKm = 100.0

	// MissingLocationScore is the score granted when either location is
	// unknown. Unknown location is treated as no penalty; this is the
	// deliberate fail-open counterpart to the availability checker's
	// fail-closed lookup policy.
	MissingLocationScore = 100
)

// ProximityScore computes the great-circle distance between two points and a
// linearly decaying proximity score in [0, 100]. If either point is missing
// the distance is nil and the score is MissingLocationScore. Pure and total.
func ProximityScore(a, b *model.GeoPoint) (*float64, int) {
	if a == nil || b == nil {
		return nil, MissingLocationScore
	}

	distance := haversineKm(*a, *b)

	score := 100 - (distance/MaxDistanceKm)*100
	if score < 0 {
		score = 0
	}

	rounded := math.Round(distance*10) / 10
	return &rounded, int(math.Round(score))
}

// haversineKm returns the great-circle distance between two points in km.
func haversineKm(a, b model.GeoPoint) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
