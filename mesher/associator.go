package mesher

import "go.viam.com/viomesher/logging"

// AssociatePlanes matches each of segmented against existingPlanes by geometricEqual, under
// either a single- or double-association policy, and returns the segmented planes that did not
// associate with any existing plane — these are the genuinely new planes the caller should
// append. If existingPlanes is empty, every segmented plane is returned unchanged.
//
// Under the single-association policy (doDoubleAssociation == false), once an existing plane
// has matched one segmented plane it is removed from consideration for subsequent segmented
// planes; a second candidate matching an already-used existing plane is logged at error level
// and continues searching the remaining, unused existing planes.
func AssociatePlanes(segmented, existingPlanes []*Plane, normalTol, distanceTol float64, doDoubleAssociation bool, logger logging.Logger) []*Plane {
	if len(existingPlanes) == 0 {
		return segmented
	}

	used := make(map[int]bool, len(existingPlanes))
	var nonAssociated []*Plane

	for _, candidate := range segmented {
		associated := false
		for idx, existing := range existingPlanes {
			if !geometricEqual(*candidate, *existing, normalTol, distanceTol) {
				continue
			}
			if used[idx] && !doDoubleAssociation {
				logger.Errorw("mesher: associate_planes: duplicate association under single-association policy", "existing_symbol", existing.Symbol)
				continue
			}
			used[idx] = true
			associated = true
			break
		}
		if !associated {
			nonAssociated = append(nonAssociated, candidate)
		}
	}

	return nonAssociated
}
