package mesher

import (
	"github.com/golang/geo/r3"

	"go.viam.com/viomesher/logging"
	"go.viam.com/viomesher/spatialmath"
)

// elongationDisabled is the sentinel passed for the elongation-ratio threshold during the
// prune/refresh stage: elongation is only meaningful in the current camera frame and cannot be
// re-verified for landmarks outside the current view. Both 0 and negative values disable the
// check (filter.go's isBadTriangle tests threshold > 0 to enable a check), so -1 here behaves
// identically to 0; -1 is kept to match the original's literal sentinel.
const elongationDisabled = -1.0

// Updater lifts a 2D triangulation into 3D, refreshes vertex positions from the latest landmark
// table, and prunes the mesh to the current time horizon.
type Updater struct {
	logger logging.Logger
}

// NewUpdater constructs an Updater that logs through logger.
func NewUpdater(logger logging.Logger) *Updater {
	return &Updater{logger: logger}
}

// populateMesh is the build stage: for each 2D triangle, maps each of its three pixel vertices
// to a landmark-id via frame, looks up that landmark's world position in landmarkPositions, and
// — provided all three resolve and the resulting triangle passes isBadTriangle — appends the
// polygon to mesh. A pixel that frame cannot map to any landmark is a hard error (fatal); a
// landmark-id frame does resolve but that is absent from landmarkPositions causes only that
// triangle to be silently skipped (logged at error level).
func (u *Updater) populateMesh(
	mesh *Mesh3D,
	mesh2D []Triangle2D,
	landmarkPositions map[LandmarkID]r3.Vector,
	frame Frame,
	pose spatialmath.Pose,
	cfg Config,
) {
	for _, tri := range mesh2D {
		polygon := make(Polygon, 0, polygonDimension)
		abandoned := false
		for _, pixel := range tri {
			lmkID := frame.FindLmkIDFromPixel(pixel)
			if lmkID == -1 {
				topologyViolation("mesher: populate_3d_mesh: pixel %+v could not be mapped to a landmark", pixel)
			}
			position, ok := landmarkPositions[lmkID]
			if !ok {
				u.logger.Errorw("mesher: populate_3d_mesh: landmark missing from landmark_positions, skipping triangle", "lmk_id", lmkID)
				abandoned = true
				break
			}
			polygon = append(polygon, Vertex{LmkID: lmkID, Position: position})
		}
		if abandoned {
			continue
		}
		if isBadTriangle(polygon, pose, cfg.MinRatioBtwLargestSmallestSide, cfg.MinElongationRatio, cfg.MaxTriangleSide) {
			continue
		}
		mesh.AddPolygon(polygon)
	}
}

// updatePolygonMeshToTimeHorizon is the prune/refresh stage: walks every polygon of mesh,
// refreshing vertex positions from landmarkPositions where present and, if reduceToTimeHorizon
// is set, dropping any polygon with a vertex absent from landmarkPositions. Surviving polygons
// are re-checked with isBadTriangle with the elongation threshold forced disabled, since
// elongation is not meaningful outside the current camera frame. Returns a fresh mesh; the
// caller is responsible for atomically swapping it in for the old one.
func (u *Updater) updatePolygonMeshToTimeHorizon(
	mesh *Mesh3D,
	landmarkPositions map[LandmarkID]r3.Vector,
	pose spatialmath.Pose,
	cfg Config,
) *Mesh3D {
	fresh := NewMesh3D()
	for i := 0; i < mesh.PolygonCount(); i++ {
		polygon, err := mesh.GetPolygon(i)
		if err != nil {
			topologyViolation("mesher: update_polygon_mesh_to_time_horizon: %v", err)
		}

		dropped := false
		for j, v := range polygon {
			position, ok := landmarkPositions[v.LmkID]
			if ok {
				polygon[j].Position = position
				continue
			}
			if cfg.ReduceMeshToTimeHorizon {
				dropped = true
				break
			}
		}
		if dropped {
			continue
		}

		if isBadTriangle(polygon, pose, cfg.MinRatioBtwLargestSmallestSide, elongationDisabled, cfg.MaxTriangleSide) {
			continue
		}
		fresh.AddPolygon(polygon)
	}
	return fresh
}

// PopulateMeshTimeHorizon runs the build stage against mesh2D, then the prune/refresh stage
// against the resulting mesh, and swaps mesh's contents for the final surviving set.
func (u *Updater) PopulateMeshTimeHorizon(
	mesh *Mesh3D,
	mesh2D []Triangle2D,
	landmarkPositions map[LandmarkID]r3.Vector,
	frame Frame,
	pose spatialmath.Pose,
	cfg Config,
) {
	built := mesh.Clone()
	u.populateMesh(built, mesh2D, landmarkPositions, frame, pose, cfg)

	refreshed := u.updatePolygonMeshToTimeHorizon(built, landmarkPositions, pose, cfg)

	mesh.vertices = refreshed.vertices
	mesh.slotByLmkID = refreshed.slotByLmkID
	mesh.polygons = refreshed.polygons
}
