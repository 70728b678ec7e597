package floorHandler

import (
	"KukoRobot/internal/api/floor"
	floorService "KukoRobot/internal/api/floor/service"
	"KukoRobot/internal/entity"
	"KukoRobot/internal/middleware"
	jwtPkg "KukoRobot/pkg/jwt"
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFloorService struct {
	result   *floor.CheckFloorResponse
	snapshot *floor.Snapshot
	err      error
	language string
}

func (f *fakeFloorService) CheckFloor(_ context.Context, language string, observer floorService.Observer) (*floor.CheckFloorResponse, error) {
	f.language = language
	if observer != nil {
		observer(floor.ScanEvent{Type: floor.EventScanStarted})
	}
	return f.result, f.err
}

func (f *fakeFloorService) LatestSnapshot(context.Context) (*floor.Snapshot, error) {
	if f.snapshot == nil {
		return nil, floor.ErrSnapshotNotFound
	}
	return f.snapshot, nil
}

func newTestApp(t *testing.T, svc floorService.IFloorService) (*fiber.App, string) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv(jwtPkg.AccessTokenSecret, "handler-secret")

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	mw := middleware.New(logger)
	app.Use(mw.NewRequestIDMiddleware())
	New(logger, validator.New(), mw, svc).Start(app.Group("/api/v1"))

	token, _, err := jwtPkg.Sign(entity.Operator{ID: "app-1", Role: entity.RoleApp}, time.Hour)
	require.NoError(t, err)
	return app, token
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var out map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = jsoniter.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestCheckFloor(t *testing.T) {
	svc := &fakeFloorService{result: &floor.CheckFloorResponse{SessionID: "01J", Status: floor.StatusClear}}
	app, token := newTestApp(t, svc)

	status, body := do(t, app, "POST", "/api/v1/floor/check", token, `{"language":"en"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "clear", body["status"])
	assert.Equal(t, "en", svc.language)
}

func TestCheckFloorRequiresToken(t *testing.T) {
	app, _ := newTestApp(t, &fakeFloorService{})

	status, _ := do(t, app, "POST", "/api/v1/floor/check", "", `{}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, "POST", "/api/v1/floor/check", "not-a-jwt", `{}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestCheckFloorRejectsLanguage(t *testing.T) {
	app, token := newTestApp(t, &fakeFloorService{})

	status, body := do(t, app, "POST", "/api/v1/floor/check", token, `{"language":"fr"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
}

func TestCheckFloorWhileScanning(t *testing.T) {
	app, token := newTestApp(t, &fakeFloorService{err: floor.ErrScanInProgress})

	status, body := do(t, app, "POST", "/api/v1/floor/check", token, ``)

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "SCAN_IN_PROGRESS", body["code"])
	assert.Equal(t, "a floor scan is already running", body["error"])
}

func TestCheckFloorRateLimited(t *testing.T) {
	svc := &fakeFloorService{result: &floor.CheckFloorResponse{Status: floor.StatusClear}}
	app, token := newTestApp(t, svc)

	for i := 0; i < 2; i++ {
		status, _ := do(t, app, "POST", "/api/v1/floor/check", token, `{}`)
		require.Equal(t, fiber.StatusOK, status)
	}

	status, _ := do(t, app, "POST", "/api/v1/floor/check", token, `{}`)
	assert.Equal(t, fiber.StatusTooManyRequests, status)
}

func TestGetSnapshot(t *testing.T) {
	app, token := newTestApp(t, &fakeFloorService{})
	status, body := do(t, app, "GET", "/api/v1/floor/snapshot", token, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "SNAPSHOT_NOT_FOUND", body["code"])

	snap := &floor.Snapshot{SessionID: "01J", Timestamp: "2025-10-13 01:47:03", Objects: []floor.SnapshotObject{}}
	app, token = newTestApp(t, &fakeFloorService{snapshot: snap})
	status, body = do(t, app, "GET", "/api/v1/floor/snapshot", token, "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "01J", body["session_id"])
}

func TestScanWebSocketRequiresUpgrade(t *testing.T) {
	app, token := newTestApp(t, &fakeFloorService{})

	status, _ := do(t, app, "GET", "/api/v1/floor/ws", token, "")

	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}
