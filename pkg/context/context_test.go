package context

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDDefaults(t *testing.T) {
	assert.Equal(t, "unknown", GetRequestID(context.Background()))
	assert.Equal(t, "abc", GetRequestID(WithRequestID(context.Background(), "abc")))
	assert.Empty(t, GetOperatorID(context.Background()))
}

func TestFromFiberCtx(t *testing.T) {
	app := fiber.New()

	var requestID, operatorID string
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals(requestIDLocal, "01HZX")
		SetOperatorID(c, "op-7")
		ctx := FromFiberCtx(c)
		requestID = GetRequestID(ctx)
		operatorID = GetOperatorID(ctx)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "01HZX", requestID)
	assert.Equal(t, "op-7", operatorID)
}

func TestFromFiberCtxHeaderFallback(t *testing.T) {
	app := fiber.New()

	var requestID string
	app.Get("/", func(c *fiber.Ctx) error {
		requestID = GetRequestID(FromFiberCtx(c))
		return nil
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "from-header")
	_, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "from-header", requestID)
}
