package floorHandler

import (
	floorService "KukoRobot/internal/api/floor/service"
	"KukoRobot/internal/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type FloorHandler struct {
	log          *logrus.Logger
	validator    *validator.Validate
	middleware   middleware.Middleware
	floorService floorService.IFloorService
}

func New(
	log *logrus.Logger,
	validator *validator.Validate,
	middleware middleware.Middleware,
	fs floorService.IFloorService,
) *FloorHandler {
	return &FloorHandler{
		log:          log,
		validator:    validator,
		middleware:   middleware,
		floorService: fs,
	}
}

func (h *FloorHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	floor := srv.Group("/floor")
	floor.Use(h.middleware.NewTokenMiddleware)

	floor.Post("/check", h.middleware.NewScanRateLimiter, h.CheckFloor)
	floor.Get("/snapshot", h.GetSnapshot)

	floor.Use("/ws", wsMiddleware)
	floor.Get("/ws", h.middleware.NewScanRateLimiter, websocket.New(h.handleScanWebSocket))
}
