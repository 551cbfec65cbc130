package mesher

import (
	"math"

	"go.viam.com/viomesher/spatialmath"
)

// isBadTriangle evaluates the composite triangle-quality predicate. A threshold <= 0 disables
// its check: the corresponding computed value is never updated from its zero value, and the
// ceiling it is compared against is relaxed to +Inf, so the "disabled" branch always passes
// regardless of the triangle's actual geometry. Returns true (bad) unless every enabled check
// passes.
func isBadTriangle(p Polygon, pose spatialmath.Pose, minRatioSides, minElongationRatio, maxTriangleSide float64) bool {
	p1, p2, p3 := p[0].Position, p[1].Position, p[2].Position
	d12, d23, d31 := SideLengths(p1, p2, p3)

	var ratio float64
	if minRatioSides > 0 {
		ratio = ComputeSideRatio(d12, d23, d31).Ratio
	}

	var elongation float64
	if minElongationRatio > 0 {
		elongation = RatioTangentialRadial(p1, p2, p3, pose)
	}

	var maxSide float64
	if maxTriangleSide > 0 {
		maxSide = d12
		if d23 > maxSide {
			maxSide = d23
		}
		if d31 > maxSide {
			maxSide = d31
		}
	}

	good := ratio >= minRatioSides && elongation >= minElongationRatio && maxSide <= effectiveMaxSide(maxTriangleSide)
	return !good
}

// effectiveMaxSide relaxes the max-side ceiling to +Inf when maxTriangleSide disables the check
// (<= 0), so the comparison against the computed (and in that case never-updated, zero-valued)
// maxSide always passes.
func effectiveMaxSide(maxTriangleSide float64) float64 {
	if maxTriangleSide <= 0 {
		return math.Inf(1)
	}
	return maxTriangleSide
}
