// Package spatialmath provides the rigid-body transform primitives the mesher needs to move
// landmark positions between the world frame and the current left-camera frame.
package spatialmath

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid transform: the position of a frame's origin together with its orientation,
// both expressed in some parent frame. For the mesher, the only Pose in play is the VIO
// backend's left-camera pose, itself expressed in the world frame.
type Pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewPose builds a Pose from a position and a unit quaternion orientation.
func NewPose(point r3.Vector, orientation quat.Number) Pose {
	return Pose{point: point, orientation: quat.Scale(1/quat.Abs(orientation), orientation)}
}

// NewZeroPose returns the identity pose: no translation, no rotation.
func NewZeroPose() Pose {
	return Pose{point: r3.Vector{}, orientation: quat.Number{Real: 1}}
}

// Point returns the pose's position in its parent frame.
func (p Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the pose's orientation as a unit quaternion.
func (p Pose) Orientation() quat.Number {
	return p.orientation
}

// TransformPointToLocal expresses a point given in the pose's parent frame (e.g. world
// coordinates of a landmark) in the pose's own local frame (e.g. the left-camera frame).
func (p Pose) TransformPointToLocal(parentPoint r3.Vector) r3.Vector {
	return rotateVector(quat.Conj(p.orientation), parentPoint.Sub(p.point))
}

// TransformPointFromLocal is the inverse of TransformPointToLocal: given a point expressed in
// the pose's local frame, returns its coordinates in the parent frame.
func (p Pose) TransformPointFromLocal(localPoint r3.Vector) r3.Vector {
	return rotateVector(p.orientation, localPoint).Add(p.point)
}

// rotateVector applies the rotation represented by the unit quaternion q to v, using the
// standard sandwich product q*v*conj(q) with v embedded as a pure quaternion.
func rotateVector(q quat.Number, v r3.Vector) r3.Vector {
	vq := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	rq := quat.Mul(quat.Mul(q, vq), quat.Conj(q))
	return r3.Vector{X: rq.Imag, Y: rq.Jmag, Z: rq.Kmag}
}

// PoseAlmostEqual reports whether two poses are equal to within floating point tolerance,
// treating antipodal quaternions (q and -q) as the same orientation.
func PoseAlmostEqual(a, b Pose) bool {
	const eps = 1e-9
	if a.point.Sub(b.point).Norm2() > eps {
		return false
	}
	diff := quat.Sub(a.orientation, b.orientation)
	diffNeg := quat.Add(a.orientation, b.orientation)
	return quat.Abs(diff) <= 1e-6 || quat.Abs(diffNeg) <= 1e-6
}
