package geometry

import (
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"
)

// BBox is an axis-aligned rectangle in image pixel coordinates.
type BBox struct {
	XMin float64
	YMin float64
	XMax float64
	YMax float64
}

// Point is a pixel coordinate, serialized as [x, y].
type Point struct {
	X float64
	Y float64
}

// NewBBox builds a box from a [x_min, y_min, x_max, y_max] slice.
func NewBBox(coords []float64) (BBox, error) {
	if len(coords) != 4 {
		return BBox{}, fmt.Errorf("bbox needs 4 coordinates, got %d", len(coords))
	}
	for _, c := range coords {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return BBox{}, fmt.Errorf("bbox coordinate %v is not finite", c)
		}
	}

	return BBox{XMin: coords[0], YMin: coords[1], XMax: coords[2], YMax: coords[3]}, nil
}

// Valid reports whether the box has a strictly positive area.
func (b BBox) Valid() bool {
	return b.XMin < b.XMax && b.YMin < b.YMax
}

func (b BBox) Width() float64 {
	return b.XMax - b.XMin
}

func (b BBox) Height() float64 {
	return b.YMax - b.YMin
}

// Area returns 0 for degenerate boxes.
func (b BBox) Area() float64 {
	if !b.Valid() {
		return 0
	}
	return b.Width() * b.Height()
}

// Center is the grasp point handed to the manipulation side.
func (b BBox) Center() Point {
	return Point{
		X: (b.XMin + b.XMax) / 2,
		Y: (b.YMin + b.YMax) / 2,
	}
}

func (b BBox) Slice() []float64 {
	return []float64{b.XMin, b.YMin, b.XMax, b.YMax}
}

func (b BBox) String() string {
	return fmt.Sprintf("[%.0f, %.0f, %.0f, %.0f]", b.XMin, b.YMin, b.XMax, b.YMax)
}

func (b BBox) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(b.Slice())
}

func (b *BBox) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := jsoniter.Unmarshal(data, &coords); err != nil {
		return err
	}
	box, err := NewBBox(coords)
	if err != nil {
		return err
	}
	*b = box
	return nil
}

func (p Point) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal([]float64{p.X, p.Y})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := jsoniter.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 2 {
		return fmt.Errorf("point needs 2 coordinates, got %d", len(coords))
	}
	p.X, p.Y = coords[0], coords[1]
	return nil
}
