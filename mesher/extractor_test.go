package mesher

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestExtractLmkIDsFromTriangleCluster_DedupesAcrossTriangles(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))
	mesh.AddPolygon(triangleAt(r3.Vector{X: 1}, r3.Vector{Y: 1}, r3.Vector{X: 1, Y: 1}, 2, 3, 4))

	cluster := TriangleCluster{ID: ClusterHorizontal, TriangleIDs: []int{0, 1}}
	ids := ExtractLmkIDsFromTriangleCluster(mesh, cluster, nil, false)

	test.That(t, len(ids), test.ShouldEqual, 4)
}

func TestExtractLmkIDsFromTriangleCluster_FiltersToTimeHorizon(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))

	horizon := map[LandmarkID]struct{}{1: {}, 2: {}}
	cluster := TriangleCluster{ID: ClusterHorizontal, TriangleIDs: []int{0}}
	ids := ExtractLmkIDsFromTriangleCluster(mesh, cluster, horizon, true)

	test.That(t, len(ids), test.ShouldEqual, 2)
	for _, id := range ids {
		_, ok := horizon[id]
		test.That(t, ok, test.ShouldBeTrue)
	}
}

func TestExtractLmkIDsFromVectorOfTriangleClusters(t *testing.T) {
	mesh := NewMesh3D()
	mesh.AddPolygon(triangleAt(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{Y: 1}, 1, 2, 3))
	mesh.AddPolygon(triangleAt(r3.Vector{X: 5}, r3.Vector{X: 6}, r3.Vector{X: 5, Y: 1}, 10, 11, 12))

	clusters := []TriangleCluster{
		{ID: ClusterHorizontal, TriangleIDs: []int{0}},
		{ID: ClusterWall, TriangleIDs: []int{1}},
	}
	out := ExtractLmkIDsFromVectorOfTriangleClusters(mesh, clusters, nil, false)

	test.That(t, len(out), test.ShouldEqual, 2)
	test.That(t, len(out[0]), test.ShouldEqual, 3)
	test.That(t, len(out[1]), test.ShouldEqual, 3)
}
