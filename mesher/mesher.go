package mesher

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/viomesher/logging"
	"go.viam.com/viomesher/spatialmath"
)

// StereoFrame is the external collaborator that supplies a per-frame 2D triangulation of
// tracked keypoints and, optionally, extra stereo-only 3D points not yet promoted to VIO
// landmarks. Stereo triangulation itself is out of scope for this package.
type StereoFrame interface {
	// CreateMesh2DVio builds the 2D Delaunay triangulation over the given landmark-ids' tracked
	// pixel locations.
	CreateMesh2DVio(landmarkIDs []LandmarkID) []Triangle2D
	// ExtraStereoLandmarks returns 3D points triangulated from stereo that are not (yet) VIO
	// landmarks, keyed by a landmark-id the caller controls.
	ExtraStereoLandmarks() map[LandmarkID]r3.Vector
}

// Mesher is the top-level engine: it owns the persistent Mesh3D, the plane segmenter (and so the
// process-lifetime plane-symbol counter), and wires the updater, segmenter, associator and
// extractor together into the per-frame mesh-update and plane-segmentation pipeline.
type Mesher struct {
	cfg    Config
	logger logging.Logger

	mesh      *Mesh3D
	updater   *Updater
	segmenter *Segmenter
}

// NewMesher constructs a Mesher with an empty mesh and a fresh plane-symbol counter starting at
// 0.
func NewMesher(cfg Config, logger logging.Logger) *Mesher {
	return &Mesher{
		cfg:       cfg,
		logger:    logger,
		mesh:      NewMesh3D(),
		updater:   NewUpdater(logger.Sublogger("updater")),
		segmenter: NewSegmenter(logger.Sublogger("segmenter"), cfg),
	}
}

// UpdateMesh3D is the primary entry point: runs the mesh update (build + prune/refresh) against
// the current landmark table, stereo frame, and camera pose.
func (m *Mesher) UpdateMesh3D(
	landmarkPositions map[LandmarkID]r3.Vector,
	stereoFrame StereoFrame,
	frame Frame,
	leftCameraPose spatialmath.Pose,
) {
	effectiveLandmarks := landmarkPositions
	if m.cfg.AddExtraLmksFromStereo {
		effectiveLandmarks = m.addExtraStereoLandmarks(landmarkPositions, stereoFrame)
	}

	landmarkIDs := make([]LandmarkID, 0, len(effectiveLandmarks))
	for id := range effectiveLandmarks {
		landmarkIDs = append(landmarkIDs, id)
	}
	mesh2D := stereoFrame.CreateMesh2DVio(landmarkIDs)

	m.updater.PopulateMeshTimeHorizon(m.mesh, mesh2D, effectiveLandmarks, frame, leftCameraPose, m.cfg)
}

// addExtraStereoLandmarks returns a new landmark table that is landmarkPositions augmented with
// stereoFrame's extra stereo-only points, without mutating the caller's map.
func (m *Mesher) addExtraStereoLandmarks(landmarkPositions map[LandmarkID]r3.Vector, stereoFrame StereoFrame) map[LandmarkID]r3.Vector {
	augmented := make(map[LandmarkID]r3.Vector, len(landmarkPositions))
	for id, pos := range landmarkPositions {
		augmented[id] = pos
	}
	for id, pos := range stereoFrame.ExtraStereoLandmarks() {
		if _, exists := augmented[id]; exists {
			continue
		}
		augmented[id] = pos
	}
	return augmented
}

// ClusterPlanesFromMesh walks the current mesh once, clustering polygons onto seedPlanes and
// segmenting new planes from the histogram of unclustered polygons. Returns the newly segmented,
// non-associated planes; seedPlanes is mutated in place.
func (m *Mesher) ClusterPlanesFromMesh(seedPlanes []*Plane) []*Plane {
	return m.segmenter.ClusterPlanesFromMesh(m.mesh, seedPlanes, m.cfg)
}

// ExtractLmkIDsFromTriangleCluster is a thin wrapper over the package-level function bound to
// this Mesher's mesh.
func (m *Mesher) ExtractLmkIDsFromTriangleCluster(cluster TriangleCluster, vioLandmarkPositions map[LandmarkID]struct{}) []LandmarkID {
	return ExtractLmkIDsFromTriangleCluster(m.mesh, cluster, vioLandmarkPositions, m.cfg.AddExtraLmksFromStereo)
}

// GetVerticesMesh is the downstream visualization hook naming the "convert vertices to matrix"
// derived view.
func (m *Mesher) GetVerticesMesh() *mat.Dense {
	return m.mesh.VerticesMatrix()
}

// GetPolygonsMesh is the downstream visualization hook naming the "convert polygons to matrix"
// derived view.
func (m *Mesher) GetPolygonsMesh() *mat.Dense {
	return m.mesh.PolygonsMatrix()
}

// Mesh returns the underlying Mesh3D for read access (e.g. PolygonCount, GetPolygon) by callers
// that need more than the matrix views.
func (m *Mesher) Mesh() *Mesh3D {
	return m.mesh
}
