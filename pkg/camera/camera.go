package camera

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"
	"time"
)

var ErrUnavailable = errors.New("camera unavailable")

// Frame is one captured JPEG image.
type Frame struct {
	Data       []byte
	MimeType   string
	Width      int
	Height     int
	CapturedAt time.Time
}

type ICamera interface {
	Capture(ctx context.Context) (*Frame, error)
	Close() error
}

// New picks the capture backend from the environment. CAMERA_SOURCE=device
// opens the robot's video device, any other value is treated as a directory of
// still images replayed in order (simulation mode).
func New() (ICamera, error) {
	source := os.Getenv("CAMERA_SOURCE")
	if source == "" {
		source = "device"
	}

	if source != "device" {
		return NewDirectoryCamera(source)
	}

	deviceID, _ := strconv.Atoi(os.Getenv("CAMERA_DEVICE_ID"))
	width, err := strconv.Atoi(os.Getenv("CAMERA_WIDTH"))
	if err != nil || width <= 0 {
		width = 2592
	}
	height, err := strconv.Atoi(os.Getenv("CAMERA_HEIGHT"))
	if err != nil || height <= 0 {
		height = 1944
	}

	return NewDeviceCamera(deviceID, width, height), nil
}

// NewFrame decodes the image header to fill in the frame dimensions.
func NewFrame(data []byte, capturedAt time.Time) (*Frame, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unreadable image: %w", err)
	}

	return &Frame{
		Data:       data,
		MimeType:   "image/" + format,
		Width:      cfg.Width,
		Height:     cfg.Height,
		CapturedAt: capturedAt,
	}, nil
}
