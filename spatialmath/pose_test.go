package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestNewZeroPose_IsIdentity(t *testing.T) {
	pose := NewZeroPose()
	p := r3.Vector{X: 1, Y: 2, Z: 3}
	test.That(t, pose.TransformPointToLocal(p), test.ShouldResemble, p)
	test.That(t, pose.TransformPointFromLocal(p), test.ShouldResemble, p)
}

func TestPose_TransformRoundTrip(t *testing.T) {
	// 90 degree rotation about Z.
	half := math.Pi / 4
	q := quat.Number{Real: math.Cos(half), Kmag: math.Sin(half)}
	pose := NewPose(r3.Vector{X: 1, Y: 0, Z: 0}, q)

	world := r3.Vector{X: 5, Y: 0, Z: 0}
	local := pose.TransformPointToLocal(world)
	back := pose.TransformPointFromLocal(local)

	test.That(t, math.Abs(back.X-world.X), test.ShouldBeLessThanOrEqualTo, 1e-9)
	test.That(t, math.Abs(back.Y-world.Y), test.ShouldBeLessThanOrEqualTo, 1e-9)
	test.That(t, math.Abs(back.Z-world.Z), test.ShouldBeLessThanOrEqualTo, 1e-9)
}

func TestPoseAlmostEqual_AntipodalOrientation(t *testing.T) {
	a := NewPose(r3.Vector{}, quat.Number{Real: 1})
	b := NewPose(r3.Vector{}, quat.Number{Real: -1})
	test.That(t, PoseAlmostEqual(a, b), test.ShouldBeTrue)
}
