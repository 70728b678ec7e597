package audio

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type Transcript struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type ITranscriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string, language string) (*Transcript, error)
}

type TranscriptionService struct {
	client *openai.Client
	model  string
}

func NewTranscriptionService() (*TranscriptionService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY is required")
	}

	model := os.Getenv("WHISPER_MODEL")
	if model == "" {
		model = openai.Whisper1
	}

	return &TranscriptionService{client: openai.NewClient(apiKey), model: model}, nil
}

// Transcribe sends the recording to Whisper. An empty language lets Whisper
// detect it; the detected name is normalized to a two-letter tag.
func (t *TranscriptionService) Transcribe(ctx context.Context, audio []byte, filename string, language string) (*Transcript, error) {
	if len(audio) == 0 {
		return nil, errors.New("empty audio")
	}
	if filename == "" {
		filename = "command.wav"
	}

	req := openai.AudioRequest{
		Model:    t.model,
		Reader:   bytes.NewReader(audio),
		FilePath: filename,
		Language: language,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := t.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, err
	}

	detected := language
	if detected == "" {
		detected = LanguageTag(resp.Language)
	}

	return &Transcript{Text: strings.TrimSpace(resp.Text), Language: detected}, nil
}

// LanguageTag maps Whisper's language names ("spanish", "english") to tags.
func LanguageTag(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "english", "en":
		return "en"
	case "spanish", "es", "castilian":
		return "es"
	default:
		return ""
	}
}
