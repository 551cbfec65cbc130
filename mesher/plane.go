package mesher

import "github.com/golang/geo/r3"

// Plane is the locus {x : x.Normal = Distance}, identified by a process-lifetime-unique symbol.
type Plane struct {
	Symbol   PlaneSymbol
	Normal   r3.Vector
	Distance float64
	LmkIDs   []LandmarkID
	Cluster  TriangleCluster
}

// planeSymbolCounter is the sole authority for minting new plane symbols: a monotonically
// increasing, process-local counter. Modeled as a field rather than a package-level global so
// multiple Mesher instances in one process never share (or race on) identity.
type planeSymbolCounter struct {
	next uint64
}

// nextSymbol mints the next plane symbol under the 'P' character, never decrementing or reusing an
// index.
func (c *planeSymbolCounter) nextSymbol() PlaneSymbol {
	sym := PlaneSymbol{Char: 'P', Index: c.next}
	c.next++
	return sym
}

// resetClusterState clears a seed plane's lmk-ids and triangle-cluster ids in place, as done at
// the start of every cluster_planes_from_mesh call; the plane's symbol and geometry (normal,
// distance) are untouched.
func (p *Plane) resetClusterState() {
	p.LmkIDs = p.LmkIDs[:0]
	p.Cluster.TriangleIDs = p.Cluster.TriangleIDs[:0]
}

// geometricEqual reports whether two planes describe the same physical plane within tolerance,
// treating antipodal normals (n and -n, with correspondingly negated distance) as equivalent.
func geometricEqual(a, b Plane, normalTol, distanceTol float64) bool {
	if IsNormalAroundAxis(a.Normal, b.Normal, normalTol) {
		// a.Normal and b.Normal are nearly parallel or antiparallel; disambiguate which.
		if a.Normal.Dot(b.Normal) >= 0 {
			return absFloat(a.Distance-b.Distance) <= distanceTol
		}
		return absFloat(a.Distance+b.Distance) <= distanceTol
	}
	return false
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
