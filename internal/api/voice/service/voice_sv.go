package voiceService

import (
	"KukoRobot/internal/api/floor"
	floorService "KukoRobot/internal/api/floor/service"
	"KukoRobot/internal/api/voice"
	contextPkg "KukoRobot/pkg/context"
	"KukoRobot/pkg/gemini"
	"KukoRobot/pkg/response"
	"KukoRobot/pkg/utils"
	"context"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const nluPrompt = `You control a home robot that can inspect the floor of a room.
Interpret the following voice command, which may be in Spanish or English.
Return only JSON with these fields:
{"action": string, "location": string, "object": string, "intent": string,
 "confidence": number from 0 to 100, "natural_response": short reply in the
 command's language, "detected_language": "es" or "en"}
Use intent "inspect_room" when the user asks to check, scan or look at the floor.
Command: %q`

func (s *voiceService) ProcessVoiceCommand(ctx context.Context, req voice.ProcessVoiceRequest) (*voice.CommandResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.utils.ValidateAudioFile(req.AudioFile); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Invalid audio file")
		return nil, audioError(err)
	}

	data, err := s.utils.ReadFile(req.AudioFile)
	if err != nil {
		return nil, response.Wrap(voice.ErrInvalidAudioFile, err)
	}

	transcript, err := s.transcriber.Transcribe(ctx, data, req.AudioFile.Filename, req.Language)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to transcribe audio")
		return nil, response.Wrap(voice.ErrTranscriptionFailed, err)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		return nil, voice.ErrEmptyTranscript
	}

	command, err := s.ParseCommand(ctx, transcript.Text)
	if err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = transcript.Language
	}
	if language == "" {
		language = command.DetectedLanguage
	}
	language = floor.NormalizeLanguage(language)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"transcript": transcript.Text,
		"intent":     command.Intent,
		"confidence": command.Confidence,
		"source":     command.Source,
	}).Info("Voice command understood")

	resp := &voice.CommandResponse{
		Transcript: transcript.Text,
		Language:   language,
		Command:    *command,
	}

	if command.IsFloorScan() {
		scan, err := s.floorService.CheckFloor(ctx, language, nil)
		if err != nil {
			return nil, err
		}
		resp.Scan = scan
		resp.Text = scanSpeech(language, scan)
	} else {
		resp.Text = command.NaturalResponse
		if resp.Text == "" {
			resp.Text = unsupportedReply(language)
		}
	}

	resp.Audio = s.synthesize(ctx, requestID, resp.Text)
	return resp, nil
}

// ParseCommand asks Gemini first and falls back to the local keyword parser
// when Gemini is not configured or its answer is unusable.
func (s *voiceService) ParseCommand(ctx context.Context, text string) (*voice.Command, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, voice.ErrEmptyTranscript
	}

	if s.gemini != nil {
		command, err := s.parseWithGemini(ctx, text)
		if err == nil {
			return command, nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Warn("Gemini NLU failed, using local parser")
	}

	result := s.nlpProcessor.ProcessCommand(text)
	return &voice.Command{
		Action:           result.Action,
		Location:         result.Location,
		Object:           result.Object,
		Intent:           result.Intent,
		Confidence:       result.Confidence,
		DetectedLanguage: result.Language,
		Source:           voice.SourceLocal,
	}, nil
}

func (s *voiceService) parseWithGemini(ctx context.Context, text string) (*voice.Command, error) {
	out, err := s.gemini.GenerateText(ctx, fmt.Sprintf(nluPrompt, text))
	if err != nil {
		return nil, err
	}

	payload, err := gemini.ExtractJSON(out)
	if err != nil {
		return nil, err
	}

	var command voice.Command
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(payload), &command); err != nil {
		return nil, err
	}
	if command.Intent == "" && command.Action == "" {
		return nil, errors.New("empty intent")
	}

	if command.DetectedLanguage == "" {
		command.DetectedLanguage = s.nlpProcessor.DetectLanguage(text)
	}
	command.Source = voice.SourceGemini
	return &command, nil
}

func (s *voiceService) synthesize(ctx context.Context, requestID, text string) string {
	if s.speech == nil || text == "" {
		return ""
	}

	data, err := s.speech.Synthesize(ctx, text)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to generate audio response, continuing without audio")
		return ""
	}

	return s.utils.EncodeBase64(data)
}

func scanSpeech(language string, scan *floor.CheckFloorResponse) string {
	parts := []string{floorService.Intro(language)}
	if scan.Rotations > 0 {
		parts = append(parts, floorService.Expanding(language))
	}
	parts = append(parts, scan.Summary.Speech())
	return strings.Join(parts, ". ")
}

func unsupportedReply(language string) string {
	if language == floor.LanguageEnglish {
		return "For now I can only check the floor"
	}
	return "Por ahora solo puedo revisar el piso"
}

func audioError(err error) error {
	switch {
	case errors.Is(err, utils.ErrFileTooLarge):
		return voice.ErrAudioFileTooLarge
	case errors.Is(err, utils.ErrUnsupportedFormat):
		return voice.ErrUnsupportedFormat
	default:
		return voice.ErrInvalidAudioFile
	}
}
