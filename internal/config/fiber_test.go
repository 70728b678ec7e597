package config

import (
	"KukoRobot/pkg/handlerUtil"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFiber() *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewFiber(logger)
}

func decodeError(t *testing.T, body io.Reader) handlerUtil.ErrorResponse {
	t.Helper()
	var out handlerUtil.ErrorResponse
	require.NoError(t, jsoniter.NewDecoder(body).Decode(&out))
	return out
}

func TestFiberUnknownRouteIsJSON(t *testing.T) {
	app := newTestFiber()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/v1/robot/dance", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Contains(t, body.Error, "/api/v1/robot/dance")
}

func TestFiberUnhandledErrorHidesCause(t *testing.T) {
	app := newTestFiber()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("camera driver segfault")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body := decodeError(t, resp.Body)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, body.Error, "segfault")
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "REQUEST_ENTITY_TOO_LARGE", statusCode(fiber.StatusRequestEntityTooLarge))
	assert.Equal(t, "TOO_MANY_REQUESTS", statusCode(fiber.StatusTooManyRequests))
}
