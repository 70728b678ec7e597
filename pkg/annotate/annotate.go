package annotate

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"KukoRobot/pkg/geometry"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	strokeWidth = 3
	jpegQuality = 90
)

// Box is one labelled rectangle to draw.
type Box struct {
	BBox     geometry.BBox
	Label    string
	Category string
}

var categoryHue = map[string]float64{
	"toy":      120,
	"trash":    0,
	"clothing": 210,
	"other":    45,
}

// CategoryColor gives every category a stable, saturated color.
func CategoryColor(category string) color.RGBA {
	hue, ok := categoryHue[category]
	if !ok {
		hue = 290
	}
	r, g, b := colorful.Hsv(hue, 0.85, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Annotate draws the boxes and their labels onto an encoded image and returns
// the result as JPEG.
func Annotate(data []byte, boxes []Box) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}

	canvas := imaging.Clone(src)
	for _, b := range boxes {
		rect := image.Rect(int(b.BBox.XMin), int(b.BBox.YMin), int(b.BBox.XMax), int(b.BBox.YMax)).
			Intersect(canvas.Bounds())
		if rect.Empty() {
			continue
		}

		col := CategoryColor(b.Category)
		drawRect(canvas, rect, col)
		if b.Label != "" {
			drawLabel(canvas, rect.Min, b.Label, col)
		}
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode annotated frame: %w", err)
	}
	return buf.Bytes(), nil
}

func drawRect(img draw.Image, r image.Rectangle, col color.Color) {
	fill := image.NewUniform(col)
	for i := 0; i < strokeWidth; i++ {
		edges := []image.Rectangle{
			image.Rect(r.Min.X, r.Min.Y+i, r.Max.X, r.Min.Y+i+1),
			image.Rect(r.Min.X, r.Max.Y-i-1, r.Max.X, r.Max.Y-i),
			image.Rect(r.Min.X+i, r.Min.Y, r.Min.X+i+1, r.Max.Y),
			image.Rect(r.Max.X-i-1, r.Min.Y, r.Max.X-i, r.Max.Y),
		}
		for _, e := range edges {
			draw.Draw(img, e.Intersect(img.Bounds()), fill, image.Point{}, draw.Src)
		}
	}
}

func drawLabel(img draw.Image, at image.Point, text string, bg color.RGBA) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	top := at.Y - height - 2
	if top < img.Bounds().Min.Y {
		top = at.Y
	}
	box := image.Rect(at.X, top, at.X+width+4, top+height+2).Intersect(img.Bounds())
	draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(at.X+2, top+face.Metrics().Ascent.Ceil()+1),
	}
	d.DrawString(text)
}
