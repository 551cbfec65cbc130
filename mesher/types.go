// Package mesher maintains a time-horizon-limited 3D triangle mesh built from a per-frame 2D
// Delaunay triangulation of tracked landmarks, filters geometrically implausible triangles, and
// segments planar structures (ground planes and walls) from the mesh via histogram-based mode
// detection.
package mesher

import "github.com/golang/geo/r3"

// LandmarkID stably identifies a tracked 3D point across frames.
type LandmarkID int64

// Vertex is a landmark's identity paired with its current 3D position.
type Vertex struct {
	LmkID    LandmarkID
	Position r3.Vector
}

// Polygon is a face of the mesh: exactly three vertices. Mesh3D.AddPolygon enforces this at
// runtime since nothing in the type system prevents a caller from building a
// slice of the wrong length.
type Polygon []Vertex

// ClusterID tags a Plane's type.
type ClusterID int

const (
	// ClusterWall tags a plane whose normal is perpendicular to the vertical axis.
	ClusterWall ClusterID = 1
	// ClusterHorizontal tags a plane whose normal is parallel to the vertical axis.
	ClusterHorizontal ClusterID = 2
)

// PlaneSymbol is a plane's process-lifetime identity: a fixed character plus a monotonically
// increasing index. Two planes are the same identity iff their symbols are equal.
type PlaneSymbol struct {
	Char  byte
	Index uint64
}

// TriangleCluster names a set of Mesh3D polygon indices sharing a ClusterID.
type TriangleCluster struct {
	ID          ClusterID
	TriangleIDs []int
}

// Triangle2D is one face of the per-frame 2D Delaunay triangulation: three pixel coordinates,
// supplied by the external tracker/triangulator this package consumes from.
type Triangle2D [3]Pixel

// Pixel is an image-plane coordinate.
type Pixel struct {
	X, Y float64
}

// Frame maps a pixel coordinate to the landmark-id backing it. It is an external collaborator
// (image I/O and keypoint tracking are out of scope for this package).
type Frame interface {
	// FindLmkIDFromPixel returns the landmark-id tracked at pixel, or -1 if none is tracked
	// there.
	FindLmkIDFromPixel(pixel Pixel) LandmarkID
}
