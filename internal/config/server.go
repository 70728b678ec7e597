package config

import (
	floorHandler "KukoRobot/internal/api/floor/handler"
	floorRepository "KukoRobot/internal/api/floor/repository"
	floorService "KukoRobot/internal/api/floor/service"
	voiceHandler "KukoRobot/internal/api/voice/handler"
	voiceService "KukoRobot/internal/api/voice/service"
	"KukoRobot/internal/middleware"
	"KukoRobot/pkg/audio"
	"KukoRobot/pkg/camera"
	"KukoRobot/pkg/gemini"
	"KukoRobot/pkg/nlp"
	"KukoRobot/pkg/redis"
	"KukoRobot/pkg/s3"
	"KukoRobot/pkg/utils"
	websocketPkg "KukoRobot/pkg/websocket"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	handlers     []handler
	scanConfig   floorService.Config
	camera       camera.ICamera
	robotBridge  websocketPkg.IRobotBridge
	geminiClient gemini.IGemini
	redisServer  redis.IRedis
	s3Client     s3.ItfS3
	snapshotDir  string
	snapshotTTL  time.Duration
	transcriber  audio.ITranscriber
	speech       audio.ISpeech
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{
		scanConfig:  floorService.DefaultConfig(),
		snapshotDir: "./storage/snapshots",
	}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.camera == nil || server.robotBridge == nil || server.geminiClient == nil {
		return nil, fmt.Errorf("camera, robot bridge and gemini client are required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithScanConfig() ServerOption {
	return func(s *Server) error {
		cfg, err := LoadScanConfig()
		if err != nil {
			return fmt.Errorf("failed to load scan config: %w", err)
		}
		s.scanConfig = cfg
		return nil
	}
}

func WithCamera() ServerOption {
	return func(s *Server) error {
		cam, err := camera.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to open camera: %v", err)
			}
			return fmt.Errorf("failed to open camera: %w", err)
		}
		s.camera = cam
		return nil
	}
}

func WithRobotBridge(bridge websocketPkg.IRobotBridge) ServerOption {
	return func(s *Server) error {
		s.robotBridge = bridge
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		ttl, err := envDuration("SNAPSHOT_CACHE_TTL", 24*time.Hour)
		if err != nil {
			return err
		}
		s.snapshotTTL = ttl
		return nil
	}
}

// WithS3Client is optional: without AWS_BUCKET_NAME snapshots stay local.
func WithS3Client() ServerOption {
	return func(s *Server) error {
		if os.Getenv("AWS_BUCKET_NAME") == "" {
			if s.log != nil {
				s.log.Info("AWS_BUCKET_NAME not set, snapshot mirroring to S3 disabled")
			}
			return nil
		}

		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithSnapshotDir(dir string) ServerOption {
	return func(s *Server) error {
		if dir != "" {
			s.snapshotDir = dir
		}
		return nil
	}
}

// WithAudio enables the voice endpoints. Speech output is optional; replies
// are then returned as text only.
func WithAudio() ServerOption {
	return func(s *Server) error {
		transcriber, err := audio.NewTranscriptionService()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Voice commands disabled: %v", err)
			}
			return nil
		}
		s.transcriber = transcriber

		speech, err := audio.NewTTSService()
		if err != nil {
			if s.log != nil {
				s.log.Warnf("Spoken replies disabled: %v", err)
			}
			return nil
		}
		s.speech = speech
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Floor Domain
	floorRepo := floorRepository.New(s.log,
		floorRepository.NewRedisStore(s.redisServer, s.snapshotTTL),
		floorRepository.NewFileStore(s.snapshotDir),
		floorRepository.NewS3Store(s.s3Client),
	)
	classifier := floorService.NewGeminiClassifier(s.geminiClient, s.scanConfig.MaxDetections)
	floorServices := floorService.NewFloorService(s.log, s.scanConfig, s.camera, classifier, s.robotBridge, floorRepo, s.utils)
	floorHandlers := floorHandler.New(s.log, s.validator, s.middleware, floorServices)
	s.handlers = append(s.handlers, floorHandlers)

	// Voice Domain
	if s.transcriber != nil {
		voiceServices := voiceService.NewVoiceService(s.log, s.transcriber, s.speech, s.geminiClient, nlp.NewProcessor(), floorServices, s.utils)
		voiceHandlers := voiceHandler.New(s.log, s.validator, s.middleware, voiceServices)
		s.handlers = append(s.handlers, voiceHandlers)
	}

	s.setupHealthCheck()
}

func (s *Server) Run() error {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())
	router := s.engine.Group("/api/v1", s.middleware.NewRateLimiter)

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops accepting requests and releases the robot's devices.
func (s *Server) Shutdown() {
	if err := s.engine.ShutdownWithTimeout(10 * time.Second); err != nil {
		s.log.Warnf("Error shutting down HTTP server: %v", err)
	}
	s.robotBridge.Close()
	if err := s.camera.Close(); err != nil {
		s.log.Warnf("Error closing camera: %v", err)
	}
	if err := s.geminiClient.Close(); err != nil {
		s.log.Warnf("Error closing Gemini client: %v", err)
	}
	if s.redisServer != nil {
		_ = s.redisServer.Close()
	}
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message":          "Server is Healthy!",
			"robot_connected":  s.robotBridge.IsConnected(),
			"voice_enabled":    s.transcriber != nil,
			"snapshot_mirrors": s.s3Client != nil,
		})
	})
}
