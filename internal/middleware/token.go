package middleware

import (
	contextPkg "KukoRobot/pkg/context"
	jwtPkg "KukoRobot/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	operator, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized, access token invalid or expired",
		})
	}

	ctx.Locals(jwtPkg.OperatorLocalKey, operator)
	contextPkg.SetOperatorID(ctx, operator.ID)

	m.log.WithFields(logrus.Fields{
		"request_id":  m.GetRequestID(ctx),
		"operator_id": operator.ID,
		"role":        operator.Role,
	}).Debug("Authentication successful")
	return ctx.Next()
}
