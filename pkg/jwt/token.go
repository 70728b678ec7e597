package jwtPkg

import (
	"KukoRobot/internal/entity"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const (
	AccessTokenSecret = "JWT_ACCESS_TOKEN_SECRET"
	OperatorLocalKey  = "operator"
)

var (
	ErrMissingToken  = errors.New("missing access token")
	ErrMissingSecret = errors.New("JWT secret not configured")
	ErrInvalidClaims = errors.New("token claims are missing required fields")
)

type OperatorClaims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func Sign(operator entity.Operator, expiredAfter time.Duration) (string, int64, error) {
	secret := os.Getenv(AccessTokenSecret)
	if secret == "" {
		return "", 0, ErrMissingSecret
	}

	now := time.Now()
	expiredAt := now.Add(expiredAfter)

	claims := OperatorClaims{
		Name: operator.Name,
		Role: operator.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiredAt),
		},
	}

	logrus.WithFields(logrus.Fields{
		"operator_id": operator.ID,
		"role":        operator.Role,
	}).Debug("Creating operator token")

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		logrus.WithError(err).Error("Failed to sign token")
		return "", 0, err
	}

	return token, expiredAt.Unix(), nil
}

// VerifyTokenHeader reads the bearer token from the Authorization header,
// or from the token query parameter for WebSocket upgrades where browsers
// cannot set headers.
func VerifyTokenHeader(c *fiber.Ctx, secretEnvKey string) (entity.Operator, error) {
	accessToken := c.Query("token")

	if header := c.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, "Bearer ", 2)
		if len(parts) != 2 {
			return entity.Operator{}, errors.New("invalid Authorization format")
		}
		accessToken = parts[1]
	}

	return VerifyToken(strings.TrimSpace(accessToken), os.Getenv(secretEnvKey))
}

func VerifyToken(accessToken, secret string) (entity.Operator, error) {
	if accessToken == "" {
		return entity.Operator{}, ErrMissingToken
	}
	if secret == "" {
		return entity.Operator{}, ErrMissingSecret
	}

	claims := &OperatorClaims{}
	_, err := jwt.ParseWithClaims(accessToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return entity.Operator{}, err
	}

	if claims.Subject == "" || claims.Role == "" {
		return entity.Operator{}, ErrInvalidClaims
	}

	return entity.Operator{ID: claims.Subject, Name: claims.Name, Role: claims.Role}, nil
}

func GetOperator(c *fiber.Ctx) (entity.Operator, error) {
	operator, ok := c.Locals(OperatorLocalKey).(entity.Operator)
	if !ok {
		return entity.Operator{}, fiber.ErrUnauthorized
	}

	return operator, nil
}
