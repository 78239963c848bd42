package geo

import (
	"math"

	"github.com/waterops/backend/pkg/utils"
)

// SnapToSegment finds the closest point on segment [a,b] to p via orthogonal
// projection, clamped to the segment. The returned parameter t is 0 at a and
// 1 at b. A degenerate segment (a == b) snaps to a with t = 0.
func SnapToSegment(p, a, b LocalPoint) (LocalPoint, float64) {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y

	abLenSq := abx*abx + aby*aby
	if abLenSq == 0 {
		return a, 0
	}

	t := utils.Clamp((apx*abx+apy*aby)/abLenSq, 0, 1)
	return LocalPoint{X: a.X + t*abx, Y: a.Y + t*aby}, t
}

// SnapToNetwork projects point onto the nearest segment of the network and
// returns the snapped geographic point together with the unit tangent of the
// winning segment. Segments are compared by Euclidean distance in the local
// plane; exactly equidistant segments resolve to the first encountered in
// polyline order, then segment order.
//
// The scan is linear over all segments, which is fine for the static networks
// this serves (hundreds of points at most).
func SnapToNetwork(point GeoPoint, network Network, origin GeoPoint) (Projection, error) {
	if err := ValidateOrigin(origin); err != nil {
		return Projection{}, err
	}

	p := ToLocal(point, origin)

	var (
		bestDistSq = math.Inf(1)
		bestSnap   LocalPoint
		bestA      LocalPoint
		bestB      LocalPoint
		found      bool
	)

	for _, line := range network {
		if len(line) < 2 {
			continue
		}
		a := ToLocal(line[0], origin)
		for i := 1; i < len(line); i++ {
			b := ToLocal(line[i], origin)
			snap, _ := SnapToSegment(p, a, b)
			dx, dy := p.X-snap.X, p.Y-snap.Y
			distSq := dx*dx + dy*dy
			if distSq < bestDistSq {
				bestDistSq = distSq
				bestSnap = snap
				bestA, bestB = a, b
				found = true
			}
			a = b
		}
	}

	if !found {
		return Projection{}, ErrEmptyNetwork
	}

	return Projection{
		Point:   ToGeo(bestSnap, origin),
		Tangent: unitTangent(bestA, bestB),
	}, nil
}

// Offset moves point by meters along dir in the local plane and converts back
// to geographic coordinates. dir must already be unit-length; a non-normalized
// direction scales the distance accordingly.
func Offset(point GeoPoint, dir LocalPoint, meters float64, origin GeoPoint) (GeoPoint, error) {
	if err := ValidateOrigin(origin); err != nil {
		return GeoPoint{}, err
	}
	p := ToLocal(point, origin)
	return ToGeo(LocalPoint{X: p.X + dir.X*meters, Y: p.Y + dir.Y*meters}, origin), nil
}

// Perpendicular rotates a direction 90 degrees counterclockwise. Combined with
// its negation this gives the left/right sides of a tangent, and the convention
// must stay fixed so markers land on consistent sides.
func Perpendicular(dir LocalPoint) LocalPoint {
	return LocalPoint{X: -dir.Y, Y: dir.X}
}

// unitTangent returns the normalized direction of segment [a,b], or (1,0) for
// a zero-length segment.
func unitTangent(a, b LocalPoint) LocalPoint {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return LocalPoint{X: 1, Y: 0}
	}
	return LocalPoint{X: dx / length, Y: dy / length}
}
