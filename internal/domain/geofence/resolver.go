package geofence

import (
	"github.com/cmlabs-hris/geofence-backend-go/internal/pkg/geo"
)

// Evaluation is the result of resolving a coordinate against candidate zones.
type Evaluation struct {
	Status         Status
	Zone           *Zone
	DistanceMeters *float64
}

// Resolve evaluates a coordinate against the candidate zones.
//
// A zone contains the coordinate iff the haversine distance to its center is
// at most its radius (boundary inclusive). When one or more zones contain the
// coordinate the status is inside and the nearest containing zone wins; when
// none do the status is outside and the nearest candidate is reported; with
// no candidates at all the status is unknown.
//
// Ties on distance go to the earliest-created candidate. Candidates are
// expected in creation order (the zone store returns them that way), so a
// strict less-than scan yields the documented tie-break. The function is pure:
// identical input produces identical output.
func Resolve(lat, lng float64, candidates []Zone) Evaluation {
	if len(candidates) == 0 {
		return Evaluation{Status: StatusUnknown}
	}

	var (
		nearest           *Zone
		nearestDist       float64
		nearestContaining *Zone
		containingDist    float64
	)

	for i := range candidates {
		zone := &candidates[i]
		dist := geo.DistanceMeters(lat, lng, zone.Latitude, zone.Longitude)

		if nearest == nil || dist < nearestDist {
			nearest = zone
			nearestDist = dist
		}

		if dist <= zone.RadiusMeters {
			if nearestContaining == nil || dist < containingDist {
				nearestContaining = zone
				containingDist = dist
			}
		}
	}

	if nearestContaining != nil {
		return Evaluation{
			Status:         StatusInside,
			Zone:           nearestContaining,
			DistanceMeters: &containingDist,
		}
	}

	return Evaluation{
		Status:         StatusOutside,
		Zone:           nearest,
		DistanceMeters: &nearestDist,
	}
}
