package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/pkg/camera"
	"KukoRobot/pkg/gemini"
	"KukoRobot/pkg/response"
	"context"
	"fmt"
	"strings"
)

const floorPrompt = `You are the vision system of a home robot that tidies the floor.
Look ONLY at objects lying on the floor that the robot could pick up.

For each object (at most %d, most relevant first) return:
- category: one of "toy", "trash", "clothing", "other"
- description: short visual description of the object itself (color, material, shape); do not describe where it is
- confidence: 0-100
- bbox: [x_min, y_min, x_max, y_max] in pixels of this %dx%d image
- size_estimate: "small", "medium" or "large"
- accessibility: "clear" if nothing blocks it, otherwise "blocked"

Ignore furniture, walls, rugs and anything fixed to the house.
Return ONLY JSON in this shape, no extra text:
{"objects": [{"category": "toy", "description": "red plastic toy car", "confidence": 92, "bbox": [309, 169, 585, 349], "size_estimate": "small", "accessibility": "clear"}]}
If the floor is clear return {"objects": []}.`

type geminiClassifier struct {
	gemini     gemini.IGemini
	maxObjects int
}

// NewGeminiClassifier adapts a Gemini client to the IClassifier contract.
func NewGeminiClassifier(g gemini.IGemini, maxObjects int) IClassifier {
	if maxObjects <= 0 {
		maxObjects = 5
	}
	return &geminiClassifier{gemini: g, maxObjects: maxObjects}
}

func (c *geminiClassifier) Classify(ctx context.Context, frame *camera.Frame) ([]floor.RawDetection, error) {
	if frame == nil || len(frame.Data) == 0 {
		return nil, fmt.Errorf("%w: empty frame", floor.ErrClassifier)
	}

	prompt := fmt.Sprintf(floorPrompt, c.maxObjects, frame.Width, frame.Height)
	text, err := c.gemini.AnalyzeImage(ctx, frame.Data, frame.MimeType, prompt)
	if err != nil {
		return nil, response.Wrap(floor.ErrClassifier, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty response", floor.ErrClassifier)
	}

	return ParseClassifierResponse(text, c.maxObjects)
}
