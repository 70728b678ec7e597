package geometry

import (
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIoU(t *testing.T) {
	tests := []struct {
		name string
		a, b BBox
		min  float64
		max  float64
	}{
		{
			name: "identical boxes",
			a:    BBox{100, 100, 200, 200},
			b:    BBox{100, 100, 200, 200},
			min:  1,
			max:  1,
		},
		{
			name: "disjoint boxes",
			a:    BBox{0, 0, 10, 10},
			b:    BBox{20, 20, 30, 30},
			min:  0,
			max:  0,
		},
		{
			name: "touching edges do not overlap",
			a:    BBox{0, 0, 10, 10},
			b:    BBox{10, 0, 20, 10},
			min:  0,
			max:  0,
		},
		{
			name: "partial overlap",
			a:    BBox{100, 100, 200, 200},
			b:    BBox{150, 150, 250, 250},
			min:  0.1,
			max:  0.5,
		},
		{
			name: "degenerate box",
			a:    BBox{10, 10, 10, 50},
			b:    BBox{0, 0, 100, 100},
			min:  0,
			max:  0,
		},
		{
			name: "inverted box",
			a:    BBox{50, 50, 0, 0},
			b:    BBox{0, 0, 50, 50},
			min:  0,
			max:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IoU(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, tt.min)
			assert.LessOrEqual(t, got, tt.max)
			assert.Equal(t, got, IoU(tt.b, tt.a), "IoU must be symmetric")
		})
	}
}

func TestIoUPartialOverlapIsStrictlyBetween(t *testing.T) {
	got := IoU(BBox{100, 100, 200, 200}, BBox{150, 150, 250, 250})

	assert.Greater(t, got, 0.1)
	assert.Less(t, got, 0.5)
	assert.InDelta(t, 2500.0/17500.0, got, 1e-9)
}

func TestNewBBox(t *testing.T) {
	box, err := NewBBox([]float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, BBox{1, 2, 3, 4}, box)

	_, err = NewBBox([]float64{1, 2, 3})
	assert.Error(t, err)
}

func TestBBoxCenter(t *testing.T) {
	box := BBox{309, 169, 585, 349}

	assert.Equal(t, Point{X: 447, Y: 259}, box.Center())
}

func TestBBoxJSON(t *testing.T) {
	box := BBox{627, 388, 962, 646}

	data, err := jsoniter.Marshal(box)
	require.NoError(t, err)
	assert.JSONEq(t, `[627,388,962,646]`, string(data))

	var decoded BBox
	require.NoError(t, jsoniter.Unmarshal(data, &decoded))
	assert.Equal(t, box, decoded)

	center, err := jsoniter.Marshal(box.Center())
	require.NoError(t, err)
	assert.JSONEq(t, `[794.5,517]`, string(center))
}

func TestEstimateDistanceCM(t *testing.T) {
	cm, ok := EstimateDistanceCM(BBox{627, 388, 962, 646}, 1080)
	require.True(t, ok)
	assert.InDelta(t, 44.1, cm, 1e-9)

	cm, ok = EstimateDistanceCM(BBox{0, 0, 10, 1080}, 1080)
	require.True(t, ok)
	assert.InDelta(t, 20.0, cm, 1e-9)

	_, ok = EstimateDistanceCM(BBox{}, 1080)
	assert.False(t, ok)
}
