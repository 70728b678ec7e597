package voiceService

import (
	floorService "KukoRobot/internal/api/floor/service"
	"KukoRobot/internal/api/voice"
	"KukoRobot/pkg/audio"
	"KukoRobot/pkg/gemini"
	"KukoRobot/pkg/nlp"
	"KukoRobot/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type IVoiceService interface {
	ProcessVoiceCommand(ctx context.Context, req voice.ProcessVoiceRequest) (*voice.CommandResponse, error)
	ParseCommand(ctx context.Context, text string) (*voice.Command, error)
}

type voiceService struct {
	log          *logrus.Logger
	transcriber  audio.ITranscriber
	speech       audio.ISpeech
	gemini       gemini.IGemini
	nlpProcessor nlp.INLPProcessor
	floorService floorService.IFloorService
	utils        utils.IUtils
}

// NewVoiceService wires the voice flow. speech and gemini may be nil: the
// reply is then returned as text only and commands are parsed locally.
func NewVoiceService(
	log *logrus.Logger,
	transcriber audio.ITranscriber,
	speech audio.ISpeech,
	gemini gemini.IGemini,
	nlpProcessor nlp.INLPProcessor,
	floorService floorService.IFloorService,
	utils utils.IUtils,
) IVoiceService {
	return &voiceService{
		log:          log,
		transcriber:  transcriber,
		speech:       speech,
		gemini:       gemini,
		nlpProcessor: nlpProcessor,
		floorService: floorService,
		utils:        utils,
	}
}
