package camera

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// warmupFrames are discarded after opening the device so auto exposure settles.
const warmupFrames = 5

type deviceCamera struct {
	mu       sync.Mutex
	deviceID int
	width    int
	height   int
	capture  *gocv.VideoCapture
}

func NewDeviceCamera(deviceID, width, height int) ICamera {
	return &deviceCamera{
		deviceID: deviceID,
		width:    width,
		height:   height,
	}
}

func (c *deviceCamera) open() error {
	if c.capture != nil && c.capture.IsOpened() {
		return nil
	}

	vc, err := gocv.OpenVideoCapture(c.deviceID)
	if err != nil {
		return fmt.Errorf("%w: device %d: %v", ErrUnavailable, c.deviceID, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return fmt.Errorf("%w: device %d did not open", ErrUnavailable, c.deviceID)
	}

	vc.Set(gocv.VideoCaptureFOURCC, vc.ToCodec("MJPG"))
	vc.Set(gocv.VideoCaptureFrameWidth, float64(c.width))
	vc.Set(gocv.VideoCaptureFrameHeight, float64(c.height))

	warm := gocv.NewMat()
	defer warm.Close()
	for i := 0; i < warmupFrames; i++ {
		vc.Read(&warm)
	}

	c.capture = vc
	return nil
}

func (c *deviceCamera) Capture(ctx context.Context) (*Frame, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := c.open(); err != nil {
		return nil, err
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := c.capture.Read(&mat); !ok || mat.Empty() {
		c.capture.Close()
		c.capture = nil
		return nil, fmt.Errorf("%w: failed to read frame", ErrUnavailable)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())

	return &Frame{
		Data:       data,
		MimeType:   "image/jpeg",
		Width:      mat.Cols(),
		Height:     mat.Rows(),
		CapturedAt: time.Now(),
	}, nil
}

func (c *deviceCamera) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.capture == nil {
		return nil
	}
	err := c.capture.Close()
	c.capture = nil
	return err
}
