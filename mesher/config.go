package mesher

// Config enumerates every tunable recognized by the mesher. It is accepted by value at
// construction; the engine never reads global process state. Defaults follow the gflag defaults
// recovered from the original Kimera-VIO Mesher.cpp.
type Config struct {
	// AddExtraLmksFromStereo augments the landmark table with stereo-only 3D points before
	// meshing.
	AddExtraLmksFromStereo bool
	// ReduceMeshToTimeHorizon drops polygons whose vertices fell out of the time horizon during
	// the prune/refresh stage.
	ReduceMeshToTimeHorizon bool

	// Triangle filter.
	MinRatioBtwLargestSmallestSide float64
	MinElongationRatio             float64
	MaxTriangleSide                float64
	MaxGradInTriangle              float64

	// Plane association.
	NormalTolerancePolygonPlaneAssociation   float64
	DistanceTolerancePolygonPlaneAssociation float64
	NormalTolerancePlanePlaneAssociation     float64
	DistanceTolerancePlanePlaneAssociation   float64
	DoDoubleAssociation                      bool

	// Segmentation.
	NormalToleranceHorizontalSurface float64
	NormalToleranceWalls             float64
	OnlyUseNonClusteredPoints        bool

	// Z (horizontal-plane) histogram.
	ZHistogramBins                     int
	ZHistogramMinRange                 float64
	ZHistogramMaxRange                 float64
	ZHistogramWindowSize               int
	ZHistogramPeakPer                  float64
	ZHistogramMinSupport               float64
	ZHistogramMinSeparation            float64
	ZHistogramGaussianKernelSize       int
	ZHistogramMaxNumberOfPeaksToSelect int

	// 2D (wall) histogram.
	Hist2DGaussianKernelSize int
	Hist2DNrOfLocalMax       int
	Hist2DMinSupport         float64
	Hist2DMinDistBtwLocalMax float64
	Hist2DThetaBins          int
	Hist2DDistanceBins       int
	Hist2DThetaRangeMin      float64
	Hist2DThetaRangeMax      float64
	Hist2DDistanceRangeMin   float64
	Hist2DDistanceRangeMax   float64
}

// DefaultConfig returns a Config matching the original implementation's gflag defaults.
func DefaultConfig() Config {
	return Config{
		AddExtraLmksFromStereo: false,
		ReduceMeshToTimeHorizon: true,

		MinRatioBtwLargestSmallestSide: 0.5,
		MinElongationRatio:             0.5,
		MaxTriangleSide:                0.5,
		MaxGradInTriangle:              -1,

		NormalTolerancePolygonPlaneAssociation:   0.011,
		DistanceTolerancePolygonPlaneAssociation: 0.10,
		NormalTolerancePlanePlaneAssociation:     0.011,
		DistanceTolerancePlanePlaneAssociation:   0.20,
		DoDoubleAssociation:                      true,

		NormalToleranceHorizontalSurface: 0.011,
		NormalToleranceWalls:             0.0165,
		OnlyUseNonClusteredPoints:        true,

		ZHistogramBins:                     512,
		ZHistogramMinRange:                 -0.75,
		ZHistogramMaxRange:                 3.0,
		ZHistogramWindowSize:               3,
		ZHistogramPeakPer:                  0.5,
		ZHistogramMinSupport:               50,
		ZHistogramMinSeparation:            0.1,
		ZHistogramGaussianKernelSize:       5,
		ZHistogramMaxNumberOfPeaksToSelect: 3,

		Hist2DGaussianKernelSize: 3,
		Hist2DNrOfLocalMax:       2,
		Hist2DMinSupport:         20,
		Hist2DMinDistBtwLocalMax: 5,
		Hist2DThetaBins:          40,
		Hist2DDistanceBins:       40,
		Hist2DThetaRangeMin:      0,
		Hist2DThetaRangeMax:      3.141592653589793,
		Hist2DDistanceRangeMin:   -6,
		Hist2DDistanceRangeMax:   6,
	}
}
