package context

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type key string

const (
	RequestIDKey  key = "request_id"
	OperatorIDKey key = "operator_id"
)

const (
	requestIDLocal = "X-Request-ID"
	operatorLocal  = "operator_id"
)

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey, requestID)
}

func GetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func WithOperatorID(ctx context.Context, operatorID string) context.Context {
	return context.WithValue(ctx, OperatorIDKey, operatorID)
}

func GetOperatorID(ctx context.Context) string {
	operatorID, _ := ctx.Value(OperatorIDKey).(string)
	return operatorID
}

// SetOperatorID stores the authenticated operator on the fiber request so
// FromFiberCtx can carry it into service calls.
func SetOperatorID(c *fiber.Ctx, operatorID string) {
	c.Locals(operatorLocal, operatorID)
}

// FromFiberCtx detaches a context from the fasthttp request, which is
// recycled once the handler returns.
func FromFiberCtx(c *fiber.Ctx) context.Context {
	ctx := context.Background()

	requestID, ok := c.Locals(requestIDLocal).(string)
	if !ok || requestID == "" {
		requestID = c.Get(requestIDLocal)

		if requestID == "" {
			requestID = "unknown"
		}
	}
	ctx = WithRequestID(ctx, requestID)

	if operatorID, ok := c.Locals(operatorLocal).(string); ok && operatorID != "" {
		ctx = WithOperatorID(ctx, operatorID)
	}

	return ctx
}
