package floorHandler

import (
	"KukoRobot/internal/api/floor"
	contextPkg "KukoRobot/pkg/context"
	"KukoRobot/pkg/handlerUtil"
	"KukoRobot/pkg/log"
	"KukoRobot/pkg/response"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/net/context"
)

// A full sweep is eight observations and seven turns.
const scanTimeout = 3 * time.Minute

func (h *FloorHandler) CheckFloor(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), scanTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req floor.CheckFloorRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"language":   req.Language,
	}).Debug("Processing floor check request")

	result, err := h.floorService.CheckFloor(c, req.Language, nil)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "check_floor")
	}

	// a scan that ran out of time still reports what it saw, flagged partial
	return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
}

func (h *FloorHandler) GetSnapshot(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	snapshot, err := h.floorService.LatestSnapshot(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_snapshot")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, snapshot)
	}
}

// handleScanWebSocket waits for {"language": "..."} and streams scan
// progress. Closing the socket cancels the scan at the next heading.
func (h *FloorHandler) handleScanWebSocket(c *websocket.Conn) {
	requestID, _ := c.Locals("X-Request-ID").(string)
	entry := h.log.WithField("request_id", requestID)

	entry.Info("Floor scan WebSocket client connected")
	defer entry.Info("Floor scan WebSocket client disconnected")

	if err := c.SetReadDeadline(time.Now().Add(60 * time.Second)); err != nil {
		entry.Errorf("Error setting read deadline: %v", err)
		return
	}

	var req floor.CheckFloorRequest
	if err := c.ReadJSON(&req); err != nil {
		entry.Warnf("Invalid scan request: %v", err)
		h.writeEvent(c, floor.ScanEvent{Type: floor.EventScanFailed, Error: "invalid request", At: time.Now()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		h.writeEvent(c, floor.ScanEvent{Type: floor.EventScanFailed, Error: floor.ErrInvalidLanguage.Error(), At: time.Now()})
		return
	}

	scanCtx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), scanTimeout)
	defer cancel()

	// the reader only watches for the client going away
	_ = c.SetReadDeadline(time.Time{})
	go func() {
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	_, err := h.floorService.CheckFloor(scanCtx, req.Language, func(event floor.ScanEvent) {
		h.writeEvent(c, event)
	})
	if err != nil {
		message := "scan failed"
		var respErr *response.Error
		if errors.As(err, &respErr) {
			message = respErr.Error()
		}
		entry.WithField("error", err.Error()).Warn("Floor scan over WebSocket failed")
		h.writeEvent(c, floor.ScanEvent{Type: floor.EventScanFailed, Error: message, At: time.Now()})
	}

	_ = c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(5*time.Second))
}

func (h *FloorHandler) writeEvent(c *websocket.Conn, event floor.ScanEvent) {
	if err := c.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return
	}
	if err := c.WriteJSON(event); err != nil {
		h.log.Debugf("Error writing scan event: %v", err)
	}
}
