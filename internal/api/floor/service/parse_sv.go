package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/pkg/gemini"
	"KukoRobot/pkg/response"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type classifierEnvelope struct {
	Objects []jsoniter.RawMessage `json:"objects"`
}

// ParseClassifierResponse pulls the detection list out of free-form model
// output. Entries that cannot be decoded are kept with ParseError set so the
// pipeline can count them; at most maxEntries entries are returned.
func ParseClassifierResponse(text string, maxEntries int) ([]floor.RawDetection, error) {
	payload, err := gemini.ExtractJSON(text)
	if err != nil {
		return nil, response.Wrap(floor.ErrClassifier, err)
	}

	var entries []jsoniter.RawMessage
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &entries); err != nil {
			return nil, response.Wrap(floor.ErrClassifier, err)
		}
	} else {
		var envelope classifierEnvelope
		if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
			return nil, response.Wrap(floor.ErrClassifier, err)
		}
		entries = envelope.Objects
	}

	if maxEntries > 0 && len(entries) > maxEntries {
		entries = entries[:maxEntries]
	}

	detections := make([]floor.RawDetection, 0, len(entries))
	for _, entry := range entries {
		var raw floor.RawDetection
		if err := json.Unmarshal(entry, &raw); err != nil {
			raw = floor.RawDetection{ParseError: err}
		}
		detections = append(detections, raw)
	}
	return detections, nil
}
