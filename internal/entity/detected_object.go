package entity

import (
	"KukoRobot/pkg/geometry"
	"strings"
)

type Category string

const (
	CategoryToy      Category = "toy"
	CategoryTrash    Category = "trash"
	CategoryClothing Category = "clothing"
	CategoryOther    Category = "other"
)

var CategoryMap = map[string]Category{
	"toy":      CategoryToy,
	"trash":    CategoryTrash,
	"clothing": CategoryClothing,
	"other":    CategoryOther,
}

func ParseCategory(s string) (Category, bool) {
	c, ok := CategoryMap[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

type SizeEstimate uint8

const (
	SizeUnknown SizeEstimate = 0
	SizeSmall   SizeEstimate = 1
	SizeMedium  SizeEstimate = 2
	SizeLarge   SizeEstimate = 3
)

var SizeEstimateMap = map[SizeEstimate]string{
	SizeSmall:  "small",
	SizeMedium: "medium",
	SizeLarge:  "large",
}

func (s SizeEstimate) String() string {
	return SizeEstimateMap[s]
}

func ParseSizeEstimate(s string) SizeEstimate {
	for k, v := range SizeEstimateMap {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return k
		}
	}
	return SizeUnknown
}

type Accessibility uint8

const (
	AccessUnknown Accessibility = 0
	AccessClear   Accessibility = 1
	AccessBlocked Accessibility = 2
)

var AccessibilityMap = map[Accessibility]string{
	AccessClear:   "clear",
	AccessBlocked: "blocked",
}

func (a Accessibility) String() string {
	return AccessibilityMap[a]
}

func ParseAccessibility(s string) Accessibility {
	for k, v := range AccessibilityMap {
		if strings.EqualFold(strings.TrimSpace(s), v) {
			return k
		}
	}
	return AccessUnknown
}

// DetectedObject is one physical thing observed in one frame. Filters and the
// scorer return modified copies; a value is never shared between stages.
type DetectedObject struct {
	Index         int             `json:"-"`
	Category      Category        `json:"category"`
	Description   string          `json:"description"`
	Confidence    float64         `json:"confidence"`
	BBox          *geometry.BBox  `json:"bbox"`
	SizeEstimate  SizeEstimate    `json:"-"`
	Accessibility Accessibility   `json:"-"`
	PriorityScore *float64        `json:"priority_score,omitempty"`
	SourceHeading int             `json:"source_heading"`
	GraspPoint    *geometry.Point `json:"grasp_point"`
	DistanceCM    *float64        `json:"distance_cm,omitempty"`
}

// HasLocation reports whether the object can take part in overlap comparisons.
func (o DetectedObject) HasLocation() bool {
	return o.BBox != nil && o.BBox.Valid()
}

func (o DetectedObject) Priority() float64 {
	if o.PriorityScore == nil {
		return 0
	}
	return *o.PriorityScore
}
