package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/internal/entity"
	"KukoRobot/pkg/geometry"
	"KukoRobot/pkg/response"
	"errors"
	"fmt"
	"math"
	"sort"
)

// Pipeline turns one classifier response into an ordered pickup list.
type Pipeline struct {
	iouThreshold float64
	imageHeight  int
	furniture    *CategoryFilter
}

func NewPipeline(cfg Config) *Pipeline {
	return &Pipeline{
		iouThreshold: cfg.IoUThreshold,
		imageHeight:  cfg.ImageHeight,
		furniture:    NewCategoryFilter(cfg.Vocabulary),
	}
}

// Run validates, deduplicates, filters, scores and orders raw detections seen at
// heading. imageHeight is the frame height used for distance estimates; zero
// falls back to the configured height.
func (p *Pipeline) Run(raw []floor.RawDetection, heading, imageHeight int) ([]entity.DetectedObject, entity.ScanStats) {
	stats := entity.ScanStats{TotalDetected: len(raw)}

	valid := make([]entity.DetectedObject, 0, len(raw))
	for i, r := range raw {
		obj, err := ValidateDetection(r, i)
		switch {
		case errors.Is(err, floor.ErrMissingAttribute):
			stats.UnscorableRemoved++
			continue
		case err != nil:
			stats.MalformedRemoved++
			continue
		}
		obj.SourceHeading = heading
		valid = append(valid, obj)
	}

	unique := FilterDuplicates(valid, p.iouThreshold)
	stats.DuplicatesRemoved = len(valid) - len(unique)

	kept := p.furniture.Filter(unique)
	stats.FurnitureRemoved = len(unique) - len(kept)

	if imageHeight <= 0 {
		imageHeight = p.imageHeight
	}

	scored := make([]entity.DetectedObject, 0, len(kept))
	for _, o := range kept {
		score, err := Score(o)
		if err != nil {
			stats.UnscorableRemoved++
			continue
		}
		o.PriorityScore = &score
		if o.HasLocation() {
			center := o.BBox.Center()
			o.GraspPoint = &center
			if cm, ok := geometry.EstimateDistanceCM(*o.BBox, imageHeight); ok {
				o.DistanceCM = &cm
			}
		}
		scored = append(scored, o)
	}

	SortByPriority(scored)
	stats.FinalCount = len(scored)

	return scored, stats
}

// ValidateDetection converts one raw classifier entry. A missing confidence is
// reported as ErrMissingAttribute; anything structurally wrong as
// ErrMalformedDetection. Degenerate boxes become "no location".
func ValidateDetection(r floor.RawDetection, index int) (entity.DetectedObject, error) {
	if r.ParseError != nil {
		return entity.DetectedObject{}, response.Wrap(floor.ErrMalformedDetection, r.ParseError)
	}

	category, ok := entity.ParseCategory(r.Category)
	if !ok {
		return entity.DetectedObject{}, fmt.Errorf("%w: unknown category %q", floor.ErrMalformedDetection, r.Category)
	}

	if r.Confidence == nil {
		return entity.DetectedObject{}, fmt.Errorf("%w: confidence", floor.ErrMissingAttribute)
	}
	conf := *r.Confidence
	if math.IsNaN(conf) || conf < 0 || conf > 100 {
		return entity.DetectedObject{}, fmt.Errorf("%w: confidence %v out of range", floor.ErrMalformedDetection, conf)
	}

	obj := entity.DetectedObject{
		Index:         index,
		Category:      category,
		Description:   r.Description,
		Confidence:    conf,
		SizeEstimate:  entity.ParseSizeEstimate(r.SizeEstimate),
		Accessibility: entity.ParseAccessibility(r.Accessibility),
	}

	if r.BBox != nil {
		box, err := geometry.NewBBox(r.BBox)
		if err != nil {
			return entity.DetectedObject{}, response.Wrap(floor.ErrMalformedDetection, err)
		}
		if box.Valid() {
			obj.BBox = &box
		}
	}

	return obj, nil
}

// SortByPriority orders by score, then confidence, then original detection
// order (heading first for objects coming from a sweep).
func SortByPriority(objects []entity.DetectedObject) {
	sort.SliceStable(objects, func(i, j int) bool {
		a, b := objects[i], objects[j]
		if a.Priority() != b.Priority() {
			return a.Priority() > b.Priority()
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		if a.SourceHeading != b.SourceHeading {
			return a.SourceHeading < b.SourceHeading
		}
		return a.Index < b.Index
	})
}
