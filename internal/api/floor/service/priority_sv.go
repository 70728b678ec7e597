package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/internal/entity"
	"fmt"
	"math"
)

const MaxPriorityScore = 9.0

var sizeScore = map[entity.SizeEstimate]float64{
	entity.SizeSmall:  3,
	entity.SizeMedium: 2,
	entity.SizeLarge:  1,
}

var accessScore = map[entity.Accessibility]float64{
	entity.AccessClear:   3,
	entity.AccessBlocked: 1,
}

// Score ranks how cheap and safe an object is to pick up: small, unobstructed
// and confidently classified objects score highest. The result lies in [0, 9]
// and is rounded to three decimals so equal inputs compare equal.
func Score(o entity.DetectedObject) (float64, error) {
	size, ok := sizeScore[o.SizeEstimate]
	if !ok {
		return 0, fmt.Errorf("%w: size_estimate", floor.ErrMissingAttribute)
	}
	access, ok := accessScore[o.Accessibility]
	if !ok {
		return 0, fmt.Errorf("%w: accessibility", floor.ErrMissingAttribute)
	}
	if math.IsNaN(o.Confidence) || o.Confidence < 0 || o.Confidence > 100 {
		return 0, fmt.Errorf("%w: confidence", floor.ErrMissingAttribute)
	}

	conf := o.Confidence * 3 / 100
	return math.Round((size+access+conf)*1000) / 1000, nil
}
