package voiceHandler

import (
	voiceService "KukoRobot/internal/api/voice/service"
	"KukoRobot/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type VoiceHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	voiceService voiceService.IVoiceService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	vs voiceService.IVoiceService,
) *VoiceHandler {
	return &VoiceHandler{
		log:          log,
		validator:    validate,
		middleware:   middleware,
		voiceService: vs,
	}
}

func (h *VoiceHandler) Start(srv fiber.Router) {
	voice := srv.Group("/voice")
	voice.Use(h.middleware.NewTokenMiddleware)

	voice.Post("/command", h.middleware.NewScanRateLimiter, h.ProcessVoiceCommand)
	voice.Post("/parse", h.ParseCommand)
}
