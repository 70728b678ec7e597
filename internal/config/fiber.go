package config

import (
	"KukoRobot/pkg/handlerUtil"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

// audio uploads are the largest bodies the robot accepts
const maxBodySize = 25 * 1024 * 1024

func NewFiber(logger *logrus.Logger) *fiber.App {
	app := fiber.New(
		fiber.Config{
			AppName:           "Kuko Backend",
			BodyLimit:         maxBodySize,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: logger.IsLevelEnabled(logrus.DebugLevel),
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler:      newErrorHandler(logger),
		})

	return app
}

// newErrorHandler renders errors that escape the handlers (unknown routes,
// oversized bodies, panics turned into errors) in the same shape as
// handlerUtil responses.
func newErrorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(handlerUtil.ErrorResponse{
				Error: fiberErr.Message,
				Code:  statusCode(fiberErr.Code),
			})
		}

		logger.WithFields(logrus.Fields{
			"path":   c.Path(),
			"method": c.Method(),
			"error":  err.Error(),
		}).Error("Unhandled error reached the router")

		return c.Status(fiber.StatusInternalServerError).JSON(handlerUtil.ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		})
	}
}

// statusCode turns "Request Entity Too Large" into REQUEST_ENTITY_TOO_LARGE.
func statusCode(status int) string {
	return strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(status), " ", "_"))
}
