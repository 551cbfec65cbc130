package mesher

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func triangleAt(a, b, c r3.Vector, la, lb, lc LandmarkID) Polygon {
	return Polygon{
		{LmkID: la, Position: a},
		{LmkID: lb, Position: b},
		{LmkID: lc, Position: c},
	}
}

func TestAddPolygon_AllocatesSlotsAndAppends(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))

	test.That(t, mesh.PolygonCount(), test.ShouldEqual, 1)
	test.That(t, mesh.VertexCount(), test.ShouldEqual, 3)

	p, err := mesh.GetPolygon(0)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, len(p), test.ShouldEqual, 3)
}

func TestAddPolygon_NoDeduplication(t *testing.T) {
	mesh := NewMesh3D()
	tri := triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3)
	mesh.AddPolygon(tri)
	mesh.AddPolygon(tri)

	test.That(t, mesh.PolygonCount(), test.ShouldEqual, 2)
	test.That(t, mesh.VertexCount(), test.ShouldEqual, 3)
}

func TestAddPolygon_OverwritesExistingVertexPosition(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))
	mesh.AddPolygon(triangleAt(r3.Vector{Z: 5}, r3.Vector{X: 2}, r3.Vector{Y: 2}, 1, 4, 5))

	pos, ok := mesh.VertexPosition(1)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pos, test.ShouldResemble, r3.Vector{Z: 5})
}

func TestGetPolygon_OutOfRange(t *testing.T) {
	mesh := NewMesh3D()
	_, err := mesh.GetPolygon(0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSetVertexPosition_FailsForUnknownLandmark(t *testing.T) {
	mesh := NewMesh3D()
	err := mesh.SetVertexPosition(42, r3.Vector{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestSetVertexPosition_Overwrites(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))

	err := mesh.SetVertexPosition(2, r3.Vector{X: 9})
	test.That(t, err, test.ShouldBeNil)

	pos, ok := mesh.VertexPosition(2)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, pos, test.ShouldResemble, r3.Vector{X: 9})
}

func TestAddPolygon_WrongDimensionPanics(t *testing.T) {
	mesh := NewMesh3D()
	defer func() {
		r := recover()
		test.That(t, r, test.ShouldNotBeNil)
	}()
	mesh.AddPolygon(Polygon{{LmkID: 1}, {LmkID: 2}})
}

func TestPolygonDimension(t *testing.T) {
	mesh := NewMesh3D()
	test.That(t, mesh.PolygonDimension(), test.ShouldEqual, 3)
}
