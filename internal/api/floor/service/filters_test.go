package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/internal/entity"
	"KukoRobot/pkg/geometry"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func box(xmin, ymin, xmax, ymax float64) *geometry.BBox {
	return &geometry.BBox{XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}
}

func TestFilterDuplicates(t *testing.T) {
	objects := []entity.DetectedObject{
		{Description: "b", Confidence: 85, BBox: box(105, 105, 205, 205)},
		{Description: "a", Confidence: 90, BBox: box(100, 100, 200, 200)},
	}

	out := FilterDuplicates(objects, 0.5)

	require.Len(t, out, 1)
	assert.Equal(t, 90.0, out[0].Confidence)
	assert.Equal(t, "a", out[0].Description)
}

func TestFilterDuplicatesKeepsDistantAndUnlocated(t *testing.T) {
	objects := []entity.DetectedObject{
		{Description: "a", Confidence: 90, BBox: box(100, 100, 200, 200)},
		{Description: "b", Confidence: 80, BBox: box(500, 500, 600, 600)},
		{Description: "c", Confidence: 70},
		{Description: "d", Confidence: 60},
	}

	out := FilterDuplicates(objects, 0.5)

	assert.Len(t, out, 4)
}

func TestFilterDuplicatesTieKeepsFirst(t *testing.T) {
	objects := []entity.DetectedObject{
		{Description: "first", Confidence: 80, BBox: box(0, 0, 100, 100)},
		{Description: "second", Confidence: 80, BBox: box(0, 0, 100, 100)},
	}

	out := FilterDuplicates(objects, 0.5)

	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Description)
}

func TestCategoryFilter(t *testing.T) {
	filter := NewCategoryFilter(map[string][]string{
		"furniture": {"Table", "sofa"},
	})

	objects := []entity.DetectedObject{
		{Description: "wooden TABLE leg", Confidence: 99, SizeEstimate: entity.SizeSmall},
		{Description: "grey sofa cushion", Confidence: 10},
		{Description: "red toy car", Confidence: 50},
	}

	out := filter.Filter(objects)

	require.Len(t, out, 1)
	assert.Equal(t, "red toy car", out[0].Description)

	term, ok := filter.Match("a small side table")
	assert.True(t, ok)
	assert.Equal(t, "table", term)
}

func TestCategoryFilterSubstitutedVocabulary(t *testing.T) {
	filter := NewCategoryFilter(map[string][]string{"pets": {"bowl"}})

	out := filter.Filter([]entity.DetectedObject{
		{Description: "wooden table"},
		{Description: "dog bowl"},
	})

	require.Len(t, out, 1)
	assert.Equal(t, "wooden table", out[0].Description)
}

func TestScore(t *testing.T) {
	tests := []struct {
		name   string
		object entity.DetectedObject
		want   float64
	}{
		{
			name:   "small clear 90",
			object: entity.DetectedObject{SizeEstimate: entity.SizeSmall, Accessibility: entity.AccessClear, Confidence: 90},
			want:   8.7,
		},
		{
			name:   "large blocked 0",
			object: entity.DetectedObject{SizeEstimate: entity.SizeLarge, Accessibility: entity.AccessBlocked, Confidence: 0},
			want:   2,
		},
		{
			name:   "maximum",
			object: entity.DetectedObject{SizeEstimate: entity.SizeSmall, Accessibility: entity.AccessClear, Confidence: 100},
			want:   MaxPriorityScore,
		},
		{
			name:   "medium clear 50",
			object: entity.DetectedObject{SizeEstimate: entity.SizeMedium, Accessibility: entity.AccessClear, Confidence: 50},
			want:   6.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.object)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScoreMissingAttribute(t *testing.T) {
	_, err := Score(entity.DetectedObject{Accessibility: entity.AccessClear, Confidence: 50})
	assert.ErrorIs(t, err, floor.ErrMissingAttribute)

	_, err = Score(entity.DetectedObject{SizeEstimate: entity.SizeSmall, Confidence: 50})
	assert.ErrorIs(t, err, floor.ErrMissingAttribute)
}
