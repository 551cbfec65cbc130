package mesher

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"go.viam.com/viomesher/logging"
	"go.viam.com/viomesher/spatialmath"
)

// pixelFrame maps pixels to landmark-ids via an exact-match table, for test fixtures only.
type pixelFrame struct {
	byPixel map[Pixel]LandmarkID
}

func (f pixelFrame) FindLmkIDFromPixel(pixel Pixel) LandmarkID {
	if id, ok := f.byPixel[pixel]; ok {
		return id
	}
	return -1
}

func TestUpdater_Scenario1_GoodTriangleIsAdded(t *testing.T) {
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
	mesh2D := []Triangle2D{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}

	cfg := DefaultConfig()
	cfg.MinRatioBtwLargestSmallestSide = 0.5
	cfg.MinElongationRatio = 0.5
	cfg.MaxTriangleSide = 10

	mesh := NewMesh3D()
	logger := logging.NewBlankLogger("test")
	updater := NewUpdater(logger)
	updater.PopulateMeshTimeHorizon(mesh, mesh2D, landmarks, frame, spatialmath.NewZeroPose(), cfg)

	test.That(t, mesh.PolygonCount(), test.ShouldEqual, 1)
}

func TestUpdater_Scenario2_TooLongSideIsRejected(t *testing.T) {
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
	mesh2D := []Triangle2D{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}

	cfg := DefaultConfig()
	cfg.MinRatioBtwLargestSmallestSide = 0
	cfg.MinElongationRatio = 0
	cfg.MaxTriangleSide = 0.5

	mesh := NewMesh3D()
	logger := logging.NewBlankLogger("test")
	updater := NewUpdater(logger)
	updater.PopulateMeshTimeHorizon(mesh, mesh2D, landmarks, frame, spatialmath.NewZeroPose(), cfg)

	test.That(t, mesh.PolygonCount(), test.ShouldEqual, 0)
}

func TestUpdater_Scenario4_PruneDropsOutOfHorizonPolygon(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))
	mesh.AddPolygon(triangleAt(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{X: 1, Y: 1}, 2, 3, 4))

	landmarks := map[LandmarkID]r3.Vector{
		1: {X: 0, Y: 0, Z: 0},
		2: {X: 1, Y: 0, Z: 0},
		3: {X: 0, Y: 1, Z: 0},
	}
	frame := pixelFrame{}
	cfg := DefaultConfig()
	cfg.ReduceMeshToTimeHorizon = true
	cfg.MinRatioBtwLargestSmallestSide = 0
	cfg.MinElongationRatio = 0
	cfg.MaxTriangleSide = 0

	logger := logging.NewBlankLogger("test")
	updater := NewUpdater(logger)
	updater.PopulateMeshTimeHorizon(mesh, nil, landmarks, frame, spatialmath.NewZeroPose(), cfg)

	test.That(t, mesh.PolygonCount(), test.ShouldEqual, 1)
	p, err := mesh.GetPolygon(0)
	test.That(t, err, test.ShouldBeNil)
	ids := map[LandmarkID]bool{p[0].LmkID: true, p[1].LmkID: true, p[2].LmkID: true}
	test.That(t, ids[1] && ids[2] && ids[3], test.ShouldBeTrue)
}

func TestUpdater_MissingLandmarkInBuildStageSkipsTriangle(t *testing.T) {
	landmarks := map[LandmarkID]r3.Vector{
		1: {X: 0, Y: 0, Z: 0},
		2: {X: 1, Y: 0, Z: 0},
	}
	frame := pixelFrame{byPixel: map[Pixel]LandmarkID{
		{X: 0, Y: 0}: 1,
		{X: 10, Y: 0}: 2,
		{X: 0, Y: 10}: 3,
	}}
	mesh2D := []Triangle2D{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}

	cfg := DefaultConfig()
	mesh := NewMesh3D()
	logger := logging.NewBlankLogger("test")
	updater := NewUpdater(logger)
	updater.PopulateMeshTimeHorizon(mesh, mesh2D, landmarks, frame, spatialmath.NewZeroPose(), cfg)

	test.That(t, mesh.PolygonCount(), test.ShouldEqual, 0)
}

func TestUpdater_UnmappablePixelIsFatal(t *testing.T) {
	frame := pixelFrame{byPixel: map[Pixel]LandmarkID{}}
	mesh2D := []Triangle2D{{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}}

	defer func() {
		r := recover()
		test.That(t, r, test.ShouldNotBeNil)
	}()

	mesh := NewMesh3D()
	logger := logging.NewBlankLogger("test")
	updater := NewUpdater(logger)
	updater.PopulateMeshTimeHorizon(mesh, mesh2D, map[LandmarkID]r3.Vector{}, frame, spatialmath.NewZeroPose(), DefaultConfig())
}
