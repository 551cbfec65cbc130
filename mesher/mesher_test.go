package mesher

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/viomesher/logging"
	"go.viam.com/viomesher/spatialmath"
)

type fakeStereoFrame struct {
	triangles []Triangle2D
	extras    map[LandmarkID]r3.Vector
}

func (f fakeStereoFrame) CreateMesh2DVio(landmarkIDs []LandmarkID) []Triangle2D {
	return f.triangles
}

func (f fakeStereoFrame) ExtraStereoLandmarks() map[LandmarkID]r3.Vector {
	return f.extras
}

func TestMesher_UpdateMesh3D_BuildsOneTriangle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatioBtwLargestSmallestSide = 0.5
	cfg.MinElongationRatio = 0.5
	cfg.MaxTriangleSide = 10

	logger := logging.NewBlankLogger("test")
	m := NewMesher(cfg, logger)

	landmarks := map[LandmarkID]r3.Vector{
		1: {X: 0, Y: 0, Z: 0},
		2: {X: 1, Y: 0, Z: 0},
		3: {X: 0, Y: 1, Z: 0},
	}
	frame := pixelFrame{byPixel: map[Pixel]LandmarkID{
		{X: 0, Y: 0}: 1,
		{X: 10, Y: 0}: 2,
		{X: 0, Y: 10}: 3,
	}}
	stereo := fakeStereoFrame{triangles: []Triangle2D{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}}

	m.UpdateMesh3D(landmarks, stereo, frame, spatialmath.NewZeroPose())

	test.That(t, m.Mesh().PolygonCount(), test.ShouldEqual, 1)
}

func TestMesher_UpdateMesh3D_CalledTwiceIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinRatioBtwLargestSmallestSide = 0.5
	cfg.MinElongationRatio = 0.5
	cfg.MaxTriangleSide = 10

	logger := logging.NewBlankLogger("test")
	m := NewMesher(cfg, logger)

	landmarks := map[LandmarkID]r3.Vector{
		1: {X: 0, Y: 0, Z: 0},
		2: {X: 1, Y: 0, Z: 0},
		3: {X: 0, Y: 1, Z: 0},
	}
	frame := pixelFrame{byPixel: map[Pixel]LandmarkID{
		{X: 0, Y: 0}: 1,
		{X: 10, Y: 0}: 2,
		{X: 0, Y: 10}: 3,
	}}
	stereo := fakeStereoFrame{triangles: []Triangle2D{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}}

	m.UpdateMesh3D(landmarks, stereo, frame, spatialmath.NewZeroPose())
	firstCount := m.Mesh().PolygonCount()
	m.UpdateMesh3D(landmarks, stereo, frame, spatialmath.NewZeroPose())
	secondCount := m.Mesh().PolygonCount()

	test.That(t, firstCount, test.ShouldEqual, secondCount)
}

func TestMesher_AddExtraLmksFromStereoAugmentsTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AddExtraLmksFromStereo = true

	logger := logging.NewBlankLogger("test")
	m := NewMesher(cfg, logger)

	landmarks := map[LandmarkID]r3.Vector{1: {}}
	stereo := fakeStereoFrame{extras: map[LandmarkID]r3.Vector{2: {X: 1}}}

	augmented := m.addExtraStereoLandmarks(landmarks, stereo)

	test.That(t, len(augmented), test.ShouldEqual, 2)
	_, ok := augmented[2]
	test.That(t, ok, test.ShouldBeTrue)
}

func TestMesher_GetVerticesAndPolygonsMesh(t *testing.T) {
	logger := logging.NewBlankLogger("test")
	m := NewMesher(DefaultConfig(), logger)
	m.Mesh().AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))

	rows, cols := m.GetVerticesMesh().Dims()
	test.That(t, rows, test.ShouldEqual, 3)
	test.That(t, cols, test.ShouldEqual, 3)

	rows, cols = m.GetPolygonsMesh().Dims()
	test.That(t, rows, test.ShouldEqual, 1)
	test.That(t, cols, test.ShouldEqual, 3)
}
