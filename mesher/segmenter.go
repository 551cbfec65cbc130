package mesher

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/viomesher/logging"
)

// vertical is the world-frame up axis against which horizontal/wall classification is made.
var vertical = r3.Vector{X: 0, Y: 0, Z: 1}

// Segmenter clusters mesh polygons onto seed planes and, for the remainder, accumulates
// histogram inputs from which new horizontal and wall planes are segmented.
type Segmenter struct {
	logger  logging.Logger
	counter planeSymbolCounter

	zHist    *Histogram1D
	wallHist *Histogram2D
}

// NewSegmenter constructs a Segmenter. The plane-symbol counter it owns is process-lifetime:
// every Segmenter mints symbols starting at 0 and never reuses or decrements an index across the
// life of the Segmenter.
func NewSegmenter(logger logging.Logger, cfg Config) *Segmenter {
	return &Segmenter{
		logger: logger,
		zHist:  NewHistogram1D(cfg.ZHistogramBins, cfg.ZHistogramMinRange, cfg.ZHistogramMaxRange),
		wallHist: NewHistogram2D(
			cfg.Hist2DThetaBins, cfg.Hist2DDistanceBins,
			cfg.Hist2DThetaRangeMin, cfg.Hist2DThetaRangeMax,
			cfg.Hist2DDistanceRangeMin, cfg.Hist2DDistanceRangeMax,
		),
	}
}

// ClusterPlanesFromMesh is the primary segmenter entry point. It resets every incoming seed
// plane's accumulated state, walks mesh once to cluster polygons onto seed planes and accumulate
// histogram samples for the rest, segments new planes from the histograms, associates them
// against the (now-reset) seed planes, and finally populates lmk-ids for any segmented plane
// that did not associate. Returns the non-associated (i.e. genuinely new) planes; seedPlanes is
// mutated in place to carry its refreshed lmk-ids/triangle-ids.
func (s *Segmenter) ClusterPlanesFromMesh(mesh *Mesh3D, seedPlanes []*Plane, cfg Config) []*Plane {
	for _, p := range seedPlanes {
		p.resetClusterState()
	}

	var zSamples []float64
	var thetaSamples, distSamples []float64

	for i := 0; i < mesh.PolygonCount(); i++ {
		polygon, err := mesh.GetPolygon(i)
		if err != nil {
			topologyViolation("mesher: cluster_planes_from_mesh: %v", err)
		}

		normal, ok := TriangleNormal(polygon[0].Position, polygon[1].Position, polygon[2].Position)
		if !ok {
			s.logger.Warnw("mesher: cluster_planes_from_mesh: degenerate triangle normal, skipping polygon", "polygon_index", i)
			continue
		}

		isOnAPlane := false
		for _, seed := range seedPlanes {
			if IsNormalAroundAxis(normal, seed.Normal, cfg.NormalTolerancePolygonPlaneAssociation) &&
				IsPolygonAtDistanceFromPlane(polygon, seed.Normal, seed.Distance, cfg.DistanceTolerancePolygonPlaneAssociation) {
				appendLmkIDsOfPolygon(&seed.LmkIDs, polygon)
				seed.Cluster.TriangleIDs = append(seed.Cluster.TriangleIDs, i)
				isOnAPlane = true
			}
		}

		if cfg.OnlyUseNonClusteredPoints && isOnAPlane {
			continue
		}

		if IsNormalAroundAxis(normal, vertical, cfg.NormalToleranceHorizontalSurface) {
			for _, v := range polygon {
				zSamples = append(zSamples, v.Position.Z)
			}
			continue
		}

		if IsNormalPerpendicularToAxis(normal, vertical, cfg.NormalToleranceWalls) {
			theta := Longitude(normal, vertical)
			d := polygon[0].Position.Dot(normal)
			if theta < 0 {
				theta += math.Pi
				d = -d
			}
			thetaSamples = append(thetaSamples, theta)
			distSamples = append(distSamples, d)
		}
	}

	segmented := s.segmentNewPlanes(zSamples, thetaSamples, distSamples, cfg)

	nonAssociated := AssociatePlanes(segmented, seedPlanes, cfg.NormalTolerancePlanePlaneAssociation, cfg.DistanceTolerancePlanePlaneAssociation, cfg.DoDoubleAssociation, s.logger)

	for _, plane := range nonAssociated {
		s.updatePlaneLmkIDsFromMesh(plane, mesh, cfg)
	}

	return nonAssociated
}

// segmentNewPlanes runs peak detection over the z histogram (horizontal candidates) and the 2D
// (theta, distance) histogram (wall candidates), minting a fresh plane symbol for every selected
// peak.
func (s *Segmenter) segmentNewPlanes(zSamples, thetaSamples, distSamples []float64, cfg Config) []*Plane {
	var planes []*Plane

	s.zHist.Calculate(zSamples)
	peaks := s.zHist.LocalMaxima1D(cfg.ZHistogramGaussianKernelSize, cfg.ZHistogramWindowSize, cfg.ZHistogramPeakPer, cfg.ZHistogramMinSupport)
	peaks = DedupeAdjacentPeaks(peaks)
	peaks = CollapseNearbyPeaks(peaks, cfg.ZHistogramMinSeparation)
	peaks = SelectTopPeaks(peaks, cfg.ZHistogramMaxNumberOfPeaksToSelect)
	for _, peak := range peaks {
		planes = append(planes, &Plane{
			Symbol:   s.counter.nextSymbol(),
			Normal:   vertical,
			Distance: peak.Value,
			Cluster:  TriangleCluster{ID: ClusterHorizontal},
		})
	}

	s.wallHist.Calculate(thetaSamples, distSamples)
	wallPeaks := s.wallHist.LocalMaxima2D(cfg.Hist2DGaussianKernelSize, cfg.Hist2DNrOfLocalMax, cfg.Hist2DMinSupport, cfg.Hist2DMinDistBtwLocalMax)
	for _, peak := range wallPeaks {
		planes = append(planes, &Plane{
			Symbol:   s.counter.nextSymbol(),
			Normal:   r3.Vector{X: math.Cos(peak.XValue), Y: math.Sin(peak.XValue), Z: 0},
			Distance: peak.YValue,
			Cluster:  TriangleCluster{ID: ClusterWall},
		})
	}

	return planes
}

// updatePlaneLmkIDsFromMesh re-walks mesh with the same polygon-on-plane predicate used in
// ClusterPlanesFromMesh to populate plane's lmk-ids and triangle-ids, for planes that did not
// associate with an existing seed plane and so have no accumulated state yet.
func (s *Segmenter) updatePlaneLmkIDsFromMesh(plane *Plane, mesh *Mesh3D, cfg Config) {
	for i := 0; i < mesh.PolygonCount(); i++ {
		polygon, err := mesh.GetPolygon(i)
		if err != nil {
			topologyViolation("mesher: update_planes_lmk_ids_from_mesh: %v", err)
		}
		if !IsPolygonAtDistanceFromPlane(polygon, plane.Normal, plane.Distance, cfg.DistanceTolerancePolygonPlaneAssociation) {
			continue
		}
		normal, ok := TriangleNormal(polygon[0].Position, polygon[1].Position, polygon[2].Position)
		if !ok || !IsNormalAroundAxis(normal, plane.Normal, cfg.NormalTolerancePolygonPlaneAssociation) {
			continue
		}
		appendLmkIDsOfPolygon(&plane.LmkIDs, polygon)
		plane.Cluster.TriangleIDs = append(plane.Cluster.TriangleIDs, i)
	}
}

// appendLmkIDsOfPolygon appends polygon's three landmark-ids to lmkIDs, deduplicating against
// what is already present.
func appendLmkIDsOfPolygon(lmkIDs *[]LandmarkID, polygon Polygon) {
	for _, v := range polygon {
		found := false
		for _, existing := range *lmkIDs {
			if existing == v.LmkID {
				found = true
				break
			}
		}
		if !found {
			*lmkIDs = append(*lmkIDs, v.LmkID)
		}
	}
}
