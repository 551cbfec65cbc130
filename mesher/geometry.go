package mesher

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/viomesher/spatialmath"
)

// degeneracyEpsilon bounds how close to collinear a triangle's two edge vectors may be before
// its normal is considered undefined.
const degeneracyEpsilon = 1e-3

// TriangleNormal computes the unit outward normal of the triangle (p1, p2, p3). It reports false
// if the triangle is degenerate (p2-p1 and p3-p1 are nearly parallel or antiparallel), in which
// case the returned vector is the zero vector and must not be used.
func TriangleNormal(p1, p2, p3 r3.Vector) (r3.Vector, bool) {
	v21 := p2.Sub(p1).Normalize()
	v31 := p3.Sub(p1).Normalize()
	if math.Abs(v21.Dot(v31)) >= 1-degeneracyEpsilon {
		return r3.Vector{}, false
	}
	return v21.Cross(v31).Normalize(), true
}

// Longitude returns the azimuth angle of unit direction n about the unit vertical axis v: n is
// projected onto the equatorial plane and atan2 is taken over that projection. The result lies
// in (-pi, pi]. Both n and axis must be unit vectors, and the projection must be nonzero; both
// are programming-error preconditions, not per-call data faults, so violating them panics.
func Longitude(n, axis r3.Vector) float64 {
	const unitTol = 1e-5
	if math.Abs(n.Norm()-1) > unitTol || math.Abs(axis.Norm()-1) > unitTol {
		panic(errors.New("mesher: longitude: direction and axis must be unit vectors"))
	}
	proj := n.Sub(axis.Mul(axis.Dot(n)))
	if proj.X == 0 && proj.Y == 0 {
		panic(errors.New("mesher: longitude: projection onto equatorial plane is zero"))
	}
	return math.Atan2(proj.Y, proj.X)
}

// IsNormalAroundAxis reports whether n is within tol of being parallel (or antiparallel) to
// axis.
func IsNormalAroundAxis(n, axis r3.Vector, tol float64) bool {
	return math.Abs(n.Dot(axis)) > 1-tol
}

// IsNormalPerpendicularToAxis reports whether n is within tol of being perpendicular to axis.
func IsNormalPerpendicularToAxis(n, axis r3.Vector, tol float64) bool {
	return math.Abs(n.Dot(axis)) < tol
}

// IsPointAtDistanceFromPlane reports whether point lies within tol of the plane {x : x.normal =
// distance}.
func IsPointAtDistanceFromPlane(point, normal r3.Vector, distance, tol float64) bool {
	return math.Abs(distance-point.Dot(normal)) <= tol
}

// IsPolygonAtDistanceFromPlane reports whether every vertex of p satisfies
// IsPointAtDistanceFromPlane. tol must be >= 0.
func IsPolygonAtDistanceFromPlane(p Polygon, normal r3.Vector, distance, tol float64) bool {
	for _, v := range p {
		if !IsPointAtDistanceFromPlane(v.Position, normal, distance, tol) {
			return false
		}
	}
	return true
}

// SideLengths returns the three Euclidean side lengths of the triangle (p1, p2, p3): d12, d23,
// d31.
func SideLengths(p1, p2, p3 r3.Vector) (d12, d23, d31 float64) {
	return p1.Sub(p2).Norm(), p2.Sub(p3).Norm(), p3.Sub(p1).Norm()
}

// SideRatio holds min(d12,d23,d31) / max(d12,d23,d31), along with the min and max values
// themselves for callers that want them (the original's "optional outputs" design note: the
// ratio is always returned, min/max are additional fields on the same result).
type SideRatio struct {
	Ratio   float64
	MinSide float64
	MaxSide float64
}

// ComputeSideRatio computes the smallest/largest side ratio of a triangle given its three side
// lengths.
func ComputeSideRatio(d12, d23, d31 float64) SideRatio {
	min, max := d12, d12
	for _, d := range []float64{d23, d31} {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	if max == 0 {
		return SideRatio{Ratio: 0, MinSide: min, MaxSide: max}
	}
	return SideRatio{Ratio: min / max, MinSide: min, MaxSide: max}
}

// RatioTangentialRadial transforms the triangle's three vertices into the left-camera frame
// using pose, then returns the ratio of tangential-to-radial elongation about the triangle's
// centroid. The original Kimera-VIO delegates this to an external
// UtilsGeometry::get_ratio_tangential_radial helper that is not present anywhere in this
// package's reference corpus; this implementation decomposes each camera-frame vertex's
// displacement from the centroid into a component along the centroid's bearing from the camera
// origin (radial) and a component perpendicular to it (tangential), and reports the RMS
// tangential displacement over the RMS radial displacement. A triangle with no radial extent
// (squarely facing the camera) yields +Inf; a triangle whose vertices coincide yields 0.
func RatioTangentialRadial(p1, p2, p3 r3.Vector, pose spatialmath.Pose) float64 {
	c1 := pose.TransformPointToLocal(p1)
	c2 := pose.TransformPointToLocal(p2)
	c3 := pose.TransformPointToLocal(p3)

	centroid := c1.Add(c2).Add(c3).Mul(1.0 / 3.0)
	radialDir := centroid.Normalize()

	var radialSumSq, tangentialSumSq float64
	for _, c := range []r3.Vector{c1, c2, c3} {
		disp := c.Sub(centroid)
		radialComp := disp.Dot(radialDir)
		tangentialComp := disp.Sub(radialDir.Mul(radialComp)).Norm()
		radialSumSq += radialComp * radialComp
		tangentialSumSq += tangentialComp * tangentialComp
	}

	radialRMS := math.Sqrt(radialSumSq / 3)
	tangentialRMS := math.Sqrt(tangentialSumSq / 3)
	if radialRMS == 0 {
		if tangentialRMS == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return tangentialRMS / radialRMS
}
