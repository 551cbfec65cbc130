package mesher

// ExtractLmkIDsFromTriangleCluster fetches each polygon named by cluster's triangle-ids from
// mesh and appends its vertices' landmark-ids to the output, deduplicating. If
// addExtraLmksFromStereo is true, each candidate id is additionally required to be a key of
// vioLandmarkPositions (the backend's time-horizon set) before being emitted.
func ExtractLmkIDsFromTriangleCluster(
	mesh *Mesh3D,
	cluster TriangleCluster,
	vioLandmarkPositions map[LandmarkID]struct{},
	addExtraLmksFromStereo bool,
) []LandmarkID {
	var out []LandmarkID
	seen := make(map[LandmarkID]bool)

	for _, triIdx := range cluster.TriangleIDs {
		polygon, err := mesh.GetPolygon(triIdx)
		if err != nil {
			topologyViolation("mesher: extract_lmk_ids_from_triangle_cluster: %v", err)
		}
		for _, v := range polygon {
			if seen[v.LmkID] {
				continue
			}
			if addExtraLmksFromStereo {
				if _, ok := vioLandmarkPositions[v.LmkID]; !ok {
					continue
				}
			}
			seen[v.LmkID] = true
			out = append(out, v.LmkID)
		}
	}

	return out
}

// ExtractLmkIDsFromVectorOfTriangleClusters runs ExtractLmkIDsFromTriangleCluster over every
// cluster in clusters, returning one landmark-id slice per cluster in the same order.
func ExtractLmkIDsFromVectorOfTriangleClusters(
	mesh *Mesh3D,
	clusters []TriangleCluster,
	vioLandmarkPositions map[LandmarkID]struct{},
	addExtraLmksFromStereo bool,
) [][]LandmarkID {
	out := make([][]LandmarkID, len(clusters))
	for i, cluster := range clusters {
		out[i] = ExtractLmkIDsFromTriangleCluster(mesh, cluster, vioLandmarkPositions, addExtraLmksFromStereo)
	}
	return out
}
