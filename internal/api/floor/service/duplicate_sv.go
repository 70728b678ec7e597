package floorService

import (
	"KukoRobot/internal/entity"
	"KukoRobot/pkg/geometry"
	"sort"
)

// FilterDuplicates keeps the highest-confidence member of every cluster of
// boxes overlapping by at least iouThreshold. Objects without a location are
// never considered duplicates.
func FilterDuplicates(objects []entity.DetectedObject, iouThreshold float64) []entity.DetectedObject {
	sorted := make([]entity.DetectedObject, len(objects))
	copy(sorted, objects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	accepted := make([]entity.DetectedObject, 0, len(sorted))
	for _, candidate := range sorted {
		if !isDuplicate(candidate, accepted, iouThreshold) {
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}

func isDuplicate(candidate entity.DetectedObject, accepted []entity.DetectedObject, iouThreshold float64) bool {
	if !candidate.HasLocation() {
		return false
	}
	for _, kept := range accepted {
		if !kept.HasLocation() {
			continue
		}
		if geometry.IoU(*candidate.BBox, *kept.BBox) >= iouThreshold {
			return true
		}
	}
	return false
}
