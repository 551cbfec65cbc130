package mesher

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// polygonDimension is globally fixed: every Polygon in this package has exactly 3 vertices.
const polygonDimension = 3

type vertexRecord struct {
	lmkID    LandmarkID
	position r3.Vector
}

// Mesh3D is an indexed triangle mesh with stable, landmark-keyed vertex identity. Vertex
// positions are mutable; a landmark's slot, once allocated, is never reassigned to a different
// landmark. Polygon topology is a list of slot-index triples, decoupled from vertex positions so
// the mesh updater can refresh positions without rebuilding polygons.
type Mesh3D struct {
	vertices    []vertexRecord
	slotByLmkID map[LandmarkID]int
	polygons    [][polygonDimension]int
}

// NewMesh3D returns an empty mesh.
func NewMesh3D() *Mesh3D {
	return &Mesh3D{
		slotByLmkID: make(map[LandmarkID]int),
	}
}

// topologyViolation panics: a polygon of the wrong size is a programming error, never a
// per-frame data issue, so it is fatal per the error-handling design's topology-violation class.
func topologyViolation(format string, args ...interface{}) {
	panic(errors.Errorf(format, args...))
}

// Clone returns a deep-enough copy of m: a mesh updater stage that needs to append to the
// existing mesh's contents before pruning can do so without mutating the caller's mesh until
// it atomically swaps the result in.
func (m *Mesh3D) Clone() *Mesh3D {
	clone := &Mesh3D{
		vertices:    append([]vertexRecord(nil), m.vertices...),
		slotByLmkID: make(map[LandmarkID]int, len(m.slotByLmkID)),
		polygons:    append([][polygonDimension]int(nil), m.polygons...),
	}
	for k, v := range m.slotByLmkID {
		clone.slotByLmkID[k] = v
	}
	return clone
}

func (m *Mesh3D) slotFor(lmkID LandmarkID, position r3.Vector) int {
	if slot, ok := m.slotByLmkID[lmkID]; ok {
		m.vertices[slot].position = position
		return slot
	}
	slot := len(m.vertices)
	m.vertices = append(m.vertices, vertexRecord{lmkID: lmkID, position: position})
	m.slotByLmkID[lmkID] = slot
	return slot
}

// AddPolygon inserts p, allocating vertex slots for any landmark-ids seen for the first time and
// overwriting the stored position for landmark-ids already known. Duplicate triangles are not
// de-duplicated: calling AddPolygon twice with the same three vertices appends two polygons.
func (m *Mesh3D) AddPolygon(p Polygon) {
	if len(p) != polygonDimension {
		topologyViolation("mesher: topology violation: polygon has %d vertices, want %d", len(p), polygonDimension)
	}

	var slots [polygonDimension]int
	for i, v := range p {
		slots[i] = m.slotFor(v.LmkID, v.Position)
	}
	m.polygons = append(m.polygons, slots)
}

// GetPolygon returns polygon i as a freshly-constructed triple of (landmark-id, current
// position). It errors if i is out of range.
func (m *Mesh3D) GetPolygon(i int) (Polygon, error) {
	if i < 0 || i >= len(m.polygons) {
		return nil, errors.Errorf("mesher: polygon index %d out of range [0, %d)", i, len(m.polygons))
	}
	slots := m.polygons[i]
	p := make(Polygon, polygonDimension)
	for j, slot := range slots {
		rec := m.vertices[slot]
		p[j] = Vertex{LmkID: rec.lmkID, Position: rec.position}
	}
	return p, nil
}

// PolygonCount returns the number of polygons currently in the mesh.
func (m *Mesh3D) PolygonCount() int {
	return len(m.polygons)
}

// PolygonDimension returns the fixed polygon size, 3.
func (m *Mesh3D) PolygonDimension() int {
	return polygonDimension
}

// SetVertexPosition overwrites the position stored for lmkID. It errors if lmkID has no
// allocated slot.
func (m *Mesh3D) SetVertexPosition(lmkID LandmarkID, position r3.Vector) error {
	slot, ok := m.slotByLmkID[lmkID]
	if !ok {
		return errors.Errorf("mesher: set_vertex_position: landmark %d has no vertex slot", lmkID)
	}
	m.vertices[slot].position = position
	return nil
}

// VertexPosition returns the stored position for lmkID and whether it exists.
func (m *Mesh3D) VertexPosition(lmkID LandmarkID) (r3.Vector, bool) {
	slot, ok := m.slotByLmkID[lmkID]
	if !ok {
		return r3.Vector{}, false
	}
	return m.vertices[slot].position, true
}

// VertexCount returns the number of allocated vertex slots.
func (m *Mesh3D) VertexCount() int {
	return len(m.vertices)
}

// VerticesMatrix is the "convert vertices to matrix" derived view: one row per vertex slot,
// columns (x, y, z), for downstream visualization.
func (m *Mesh3D) VerticesMatrix() *mat.Dense {
	out := mat.NewDense(len(m.vertices), 3, nil)
	for i, v := range m.vertices {
		out.SetRow(i, []float64{v.position.X, v.position.Y, v.position.Z})
	}
	return out
}

// PolygonsMatrix is the "convert polygons to matrix" derived view: one row per polygon, columns
// are the three vertex-slot indices it references, for downstream visualization.
func (m *Mesh3D) PolygonsMatrix() *mat.Dense {
	out := mat.NewDense(len(m.polygons), polygonDimension, nil)
	for i, slots := range m.polygons {
		row := make([]float64, polygonDimension)
		for j, s := range slots {
			row[j] = float64(s)
		}
		out.SetRow(i, row)
	}
	return out
}

// Reset clears the mesh back to empty, keeping the allocated backing arrays.
func (m *Mesh3D) Reset() {
	m.vertices = m.vertices[:0]
	m.polygons = m.polygons[:0]
	for k := range m.slotByLmkID {
		delete(m.slotByLmkID, k)
	}
}
