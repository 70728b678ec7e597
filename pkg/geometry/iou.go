package geometry

import "math"

// Intersection returns the overlapping area of a and b, 0 when they do not touch.
func Intersection(a, b BBox) float64 {
	if !a.Valid() || !b.Valid() {
		return 0
	}

	w := math.Min(a.XMax, b.XMax) - math.Max(a.XMin, b.XMin)
	h := math.Min(a.YMax, b.YMax) - math.Max(a.YMin, b.YMin)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// IoU is the intersection-over-union ratio of two boxes, in [0, 1].
// Degenerate boxes yield 0 instead of dividing by a zero union.
func IoU(a, b BBox) float64 {
	inter := Intersection(a, b)
	union := a.Area() + b.Area() - inter
	if union <= 0 {
		return 0
	}

	iou := inter / union
	if iou > 1 {
		return 1
	}
	return iou
}
