package geometry

import "math"

const (
	// Camera looks down at the floor from roughly 45cm with a 15° tilt:
	// the top row of the frame is ~80cm away, the bottom row ~20cm.
	farDistanceCM   = 80.0
	distanceSpanCM  = 60.0
	DefaultFrameRow = 1080
)

// EstimateDistanceCM approximates how far an object is from the robot using the
// bottom edge of its box. Lower edges closer to the frame bottom are nearer.
func EstimateDistanceCM(b BBox, imageHeight int) (float64, bool) {
	if !b.Valid() {
		return 0, false
	}
	if imageHeight <= 0 {
		imageHeight = DefaultFrameRow
	}

	score := b.YMax / float64(imageHeight)
	score = math.Max(0, math.Min(1, score))

	cm := farDistanceCM - score*distanceSpanCM
	return math.Round(cm*10) / 10, true
}
