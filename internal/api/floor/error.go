package floor

import (
	"KukoRobot/pkg/response"
	"net/http"
)

var (
	ErrCapture            = response.NewError(http.StatusServiceUnavailable, "image capture failed")
	ErrClassifier         = response.NewError(http.StatusBadGateway, "vision classifier failed")
	ErrMovement           = response.NewError(http.StatusServiceUnavailable, "rotation not confirmed")
	ErrMalformedDetection = response.NewError(http.StatusUnprocessableEntity, "malformed detection")
	ErrMissingAttribute   = response.NewError(http.StatusUnprocessableEntity, "detection missing scoring attribute")
	ErrScanInProgress     = response.NewError(http.StatusConflict, "a floor scan is already running")
	ErrSnapshotNotFound   = response.NewError(http.StatusNotFound, "no snapshot recorded yet")
	ErrInvalidLanguage    = response.NewError(http.StatusBadRequest, "unsupported language")
	ErrScanState          = response.NewError(http.StatusInternalServerError, "scan state out of sync")
)
