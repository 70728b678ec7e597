package voice

import (
	"KukoRobot/internal/api/floor"
	"mime/multipart"
	"strings"
)

type ProcessVoiceRequest struct {
	AudioFile *multipart.FileHeader `json:"audio_file" validate:"required"`
	Language  string                `json:"language" validate:"omitempty,oneof=es en"`
}

type ParseRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}

// Command is the understood form of one utterance, whichever NLU produced it.
type Command struct {
	Action           string  `json:"action"`
	Location         string  `json:"location,omitempty"`
	Object           string  `json:"object,omitempty"`
	Intent           string  `json:"intent"`
	Confidence       float64 `json:"confidence"`
	NaturalResponse  string  `json:"natural_response,omitempty"`
	DetectedLanguage string  `json:"detected_language"`
	Source           string  `json:"source"`
}

const (
	SourceGemini = "gemini"
	SourceLocal  = "local"
)

var scanWords = []string{"inspect", "check", "scan"}

// IsFloorScan reports whether the command asks the robot to look at the floor.
func (c Command) IsFloorScan() bool {
	if c.Confidence <= 50 {
		return false
	}
	intent := strings.ToLower(c.Intent)
	action := strings.ToLower(c.Action)
	for _, w := range scanWords {
		if strings.Contains(intent, w) || strings.Contains(action, w) {
			return true
		}
	}
	return false
}

type CommandResponse struct {
	Transcript string                    `json:"transcript"`
	Language   string                    `json:"language"`
	Command    Command                   `json:"command"`
	Text       string                    `json:"text"`
	Audio      string                    `json:"audio,omitempty"`
	Scan       *floor.CheckFloorResponse `json:"scan,omitempty"`
}
