package annotate

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"KukoRobot/pkg/geometry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeFrame(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 40, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestAnnotateKeepsDimensions(t *testing.T) {
	frame := encodeFrame(t, 320, 240)

	out, err := Annotate(frame, []Box{
		{BBox: geometry.BBox{XMin: 20, YMin: 30, XMax: 120, YMax: 140}, Label: "0 toy", Category: "toy"},
		{BBox: geometry.BBox{XMin: 300, YMin: 200, XMax: 900, YMax: 900}, Label: "1 trash", Category: "trash"},
		{BBox: geometry.BBox{XMin: 1000, YMin: 1000, XMax: 1100, YMax: 1100}, Category: "other"},
	})
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 240, cfg.Height)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	_, g, _, _ := img.At(21, 80).RGBA()
	assert.Greater(t, g>>8, uint32(120), "left edge of the toy box is drawn green")
}

func TestAnnotateRejectsGarbage(t *testing.T) {
	_, err := Annotate([]byte("nope"), nil)

	assert.Error(t, err)
}

func TestCategoryColorDistinct(t *testing.T) {
	seen := map[color.RGBA]string{}
	for _, c := range []string{"toy", "trash", "clothing", "other"} {
		col := CategoryColor(c)
		prev, dup := seen[col]
		assert.False(t, dup, "%s shares a color with %s", c, prev)
		seen[col] = c
	}
}
