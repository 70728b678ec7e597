package handlerUtil

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/internal/api/voice"
	"KukoRobot/pkg/log"
	"KukoRobot/pkg/response"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

var errorCodes = []struct {
	err  error
	code string
}{
	{floor.ErrScanInProgress, "SCAN_IN_PROGRESS"},
	{floor.ErrSnapshotNotFound, "SNAPSHOT_NOT_FOUND"},
	{floor.ErrCapture, "CAMERA_UNAVAILABLE"},
	{floor.ErrClassifier, "CLASSIFIER_FAILED"},
	{floor.ErrMovement, "ROTATION_FAILED"},
	{floor.ErrInvalidLanguage, "INVALID_LANGUAGE"},
	{floor.ErrScanState, "SCAN_STATE_ERROR"},
	{voice.ErrInvalidAudioFile, "INVALID_AUDIO"},
	{voice.ErrAudioFileTooLarge, "AUDIO_TOO_LARGE"},
	{voice.ErrUnsupportedFormat, "UNSUPPORTED_AUDIO_FORMAT"},
	{voice.ErrTranscriptionFailed, "TRANSCRIPTION_FAILED"},
	{voice.ErrEmptyTranscript, "EMPTY_TRANSCRIPT"},
	{voice.ErrCommandNotRecognized, "COMMAND_NOT_RECOGNIZED"},
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Handle answers with the domain error's own message and code. Wrapped causes
// are logged but never sent to the client.
func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	fields := log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
		"operation":  operation,
	}

	var respErr *response.Error
	if errors.As(err, &respErr) {
		fields["code"] = respErr.Code
		body := ErrorResponse{Error: respErr.Error(), Code: Code(err)}

		if respErr.Code >= fiber.StatusInternalServerError {
			body.TraceID = log.ErrorWithTraceID(fields, "Operation failed")
		} else {
			h.logger.WithFields(fields).Warn("Operation failed with error response")
		}
		return c.Status(respErr.Code).JSON(body)
	}

	traceID := log.ErrorWithTraceID(fields, "Unexpected error")

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "An unexpected error occurred",
		Code:    "INTERNAL_ERROR",
		TraceID: traceID,
	})
}

// Code returns the stable machine-readable code for a domain error.
func Code(err error) string {
	for _, entry := range errorCodes {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return ""
}

func (h *ErrorHandler) HandleValidationError(c *fiber.Ctx, requestID string, err error, path string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"error":      err.Error(),
		"path":       path,
	}).Warn("Validation failed")

	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error: "Validation failed: " + err.Error(),
		Code:  "VALIDATION_ERROR",
	})
}

func (h *ErrorHandler) HandleRequestTimeout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusRequestTimeout).JSON(ErrorResponse{
		Error: utils.StatusMessage(fiber.StatusRequestTimeout),
		Code:  "REQUEST_TIMEOUT",
	})
}

func (h *ErrorHandler) HandleUnauthorized(c *fiber.Ctx, requestID string, message string) error {
	h.logger.WithFields(log.Fields{
		"request_id": requestID,
		"path":       c.Path(),
		"message":    message,
	}).Warn("Unauthorized access")

	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error: message,
		Code:  "UNAUTHORIZED",
	})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
