package voice

import (
	"KukoRobot/pkg/response"
	"net/http"
)

var (
	ErrInvalidAudioFile     = response.NewError(http.StatusBadRequest, "invalid audio file")
	ErrAudioFileTooLarge    = response.NewError(http.StatusBadRequest, "audio file too large")
	ErrUnsupportedFormat    = response.NewError(http.StatusBadRequest, "unsupported audio format")
	ErrTranscriptionFailed  = response.NewError(http.StatusBadGateway, "failed to transcribe audio")
	ErrEmptyTranscript      = response.NewError(http.StatusUnprocessableEntity, "no speech detected")
	ErrCommandNotRecognized = response.NewError(http.StatusUnprocessableEntity, "command not recognized")
)
