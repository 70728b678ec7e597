package floorService

import (
	"KukoRobot/internal/entity"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seen(heading int, category entity.Category, description string, confidence float64) entity.DetectedObject {
	return entity.DetectedObject{
		Category:      category,
		Description:   description,
		Confidence:    confidence,
		SourceHeading: heading,
	}
}

func headingResult(heading int, objects ...entity.DetectedObject) entity.HeadingResult {
	return entity.HeadingResult{Heading: heading, Objects: objects}
}

func TestMergeTokenOverlap(t *testing.T) {
	m := NewMerger(DefaultConfig())

	merged, count := m.Merge([]entity.HeadingResult{
		headingResult(0, seen(0, entity.CategoryToy, "red plastic toy car", 80)),
		headingResult(90, seen(90, entity.CategoryToy, "Red plastic toy car, upside down", 90)),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, 1, count)
	assert.Equal(t, 90.0, merged[0].Confidence)
	assert.Equal(t, 90, merged[0].SourceHeading)
}

func TestMergeKeepsEarlierOnTie(t *testing.T) {
	m := NewMerger(DefaultConfig())

	merged, _ := m.Merge([]entity.HeadingResult{
		headingResult(45, seen(45, entity.CategoryToy, "yellow rubber duck toy", 70)),
		headingResult(90, seen(90, entity.CategoryToy, "yellow rubber duck toy", 70)),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, 45, merged[0].SourceHeading)
}

func TestMergeWeakOverlapNeedsCategoryAndAdjacency(t *testing.T) {
	m := NewMerger(DefaultConfig())

	tests := []struct {
		name    string
		a, b    entity.DetectedObject
		wantLen int
	}{
		{
			name:    "adjacent same category",
			a:       seen(0, entity.CategoryClothing, "blue sock", 80),
			b:       seen(45, entity.CategoryClothing, "the blue sock", 85),
			wantLen: 1,
		},
		{
			name:    "wraps around",
			a:       seen(315, entity.CategoryClothing, "blue sock", 80),
			b:       seen(0, entity.CategoryClothing, "blue sock", 85),
			wantLen: 1,
		},
		{
			name:    "far apart",
			a:       seen(0, entity.CategoryClothing, "blue sock", 80),
			b:       seen(180, entity.CategoryClothing, "blue sock", 85),
			wantLen: 2,
		},
		{
			name:    "different category",
			a:       seen(0, entity.CategoryClothing, "blue sock", 80),
			b:       seen(45, entity.CategoryToy, "blue sock", 85),
			wantLen: 2,
		},
		{
			name:    "single shared word",
			a:       seen(0, entity.CategoryToy, "blue ball", 80),
			b:       seen(45, entity.CategoryToy, "blue car", 85),
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, _ := m.Merge([]entity.HeadingResult{
				headingResult(tt.a.SourceHeading, tt.a),
				headingResult(tt.b.SourceHeading, tt.b),
			})
			assert.Len(t, merged, tt.wantLen)
		})
	}
}

func TestMergeIgnoresSameHeadingAndFailedResults(t *testing.T) {
	m := NewMerger(DefaultConfig())

	merged, count := m.Merge([]entity.HeadingResult{
		headingResult(0,
			seen(0, entity.CategoryToy, "small green dinosaur toy", 80),
			seen(0, entity.CategoryToy, "small green dinosaur toy", 60),
		),
		{Heading: 45, Failed: true, Objects: []entity.DetectedObject{seen(45, entity.CategoryToy, "small green dinosaur toy", 99)}},
	})

	assert.Len(t, merged, 2)
	assert.Zero(t, count)
}

func TestTokensKeepEveryWordByDefault(t *testing.T) {
	m := NewMerger(DefaultConfig())

	tokens := m.Tokens("A Toy on the floor")

	assert.Equal(t, map[string]bool{"a": true, "toy": true, "on": true, "the": true, "floor": true}, tokens)
}

func TestTokensDropConfiguredStopWords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MergeStopWords = []string{"A", "on", "the"}
	m := NewMerger(cfg)

	tokens := m.Tokens("A toy on the floor")

	assert.Equal(t, map[string]bool{"toy": true, "floor": true}, tokens)
}

func TestMergeIdenticalShortDescriptionsAcrossSweep(t *testing.T) {
	m := NewMerger(DefaultConfig())

	merged, count := m.Merge([]entity.HeadingResult{
		headingResult(90, seen(90, entity.CategoryToy, "a toy on the floor", 70)),
		headingResult(270, seen(270, entity.CategoryToy, "a toy on the floor", 75)),
	})

	require.Len(t, merged, 1)
	assert.Equal(t, 1, count)
	assert.Equal(t, 270, merged[0].SourceHeading)
}

func TestHeadingGap(t *testing.T) {
	assert.Equal(t, 45, HeadingGap(315, 0))
	assert.Equal(t, 45, HeadingGap(0, 315))
	assert.Equal(t, 180, HeadingGap(90, 270))
	assert.Equal(t, 90, HeadingGap(45, 315))
	assert.Equal(t, 0, HeadingGap(135, 135))
}
