package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/internal/entity"
	"KukoRobot/pkg/camera"
	contextPkg "KukoRobot/pkg/context"
	"KukoRobot/pkg/response"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *floorService) CheckFloor(ctx context.Context, language string, observer Observer) (*floor.CheckFloorResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !s.scanMu.TryLock() {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Rejected floor check, another scan is running")
		return nil, floor.ErrScanInProgress
	}
	defer s.scanMu.Unlock()

	startedAt := s.now()
	sessionID, err := s.utils.NewULIDFromTimestamp(startedAt)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to generate scan session ID")
		return nil, err
	}

	session := entity.NewScanSession(sessionID, requestID, floor.NormalizeLanguage(language), startedAt)
	log := s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	})

	emit := func(event floor.ScanEvent) {
		if observer == nil {
			return
		}
		event.SessionID = sessionID
		event.At = s.now()
		observer(event)
	}

	machine := s.newMachine()
	if err := s.fire(log, machine, EventStart); err != nil {
		return nil, err
	}
	emit(floor.ScanEvent{Type: floor.EventScanStarted})
	log.WithFields(logrus.Fields{
		"language":    session.Language,
		"operator_id": contextPkg.GetOperatorID(ctx),
	}).Info("Floor scan started")

	heading := 0
	for index := 0; ; index++ {
		result, frame := s.observe(ctx, log, heading)
		session.Record(result, frame)
		if result.Failed {
			session.Warn(fmt.Sprintf("heading %d: %s", heading, result.Error))
		}
		emit(floor.ScanEvent{
			Type:    floor.EventHeadingObserved,
			Heading: heading,
			Found:   len(result.Objects),
			Error:   result.Error,
		})

		event := nextObservationEvent(index, s.cfg.ScanPositions, len(result.Objects) > 0)
		if err := s.fire(log, machine, event); err != nil {
			return nil, err
		}
		if event == EventFound {
			session.EarlyExit = true
			break
		}
		if event == EventSweepDone {
			break
		}

		if err := ctx.Err(); err != nil {
			session.Partial = true
			session.Warn(fmt.Sprintf("scan cancelled after heading %d", heading))
			log.WithField("heading", heading).Warn("Floor scan cancelled at heading boundary")
			if err := s.fire(log, machine, EventAborted); err != nil {
				return nil, err
			}
			break
		}

		emit(floor.ScanEvent{Type: floor.EventRotating, Heading: heading})
		if err := s.rotate(ctx, log, heading); err != nil {
			session.Partial = true
			session.Warn(err.Error())
			if err := s.fire(log, machine, EventRotateFailed); err != nil {
				return nil, err
			}
			break
		}
		session.Rotations++
		heading = (heading + s.cfg.TurnDegrees) % 360
		if err := s.fire(log, machine, EventRotated); err != nil {
			return nil, err
		}
	}

	if session.EarlyExit {
		session.MergedObjects = session.PerHeadingResults[0].Objects
	} else {
		merged, count := s.merger.Merge(session.Results())
		session.MergedObjects = merged
		session.Stats.CrossAngleMerged = count
		if err := s.fire(log, machine, EventAggregated); err != nil {
			return nil, err
		}
	}

	if session.Failed() {
		session.Partial = true
	}
	session.Stats.FinalCount = len(session.MergedObjects)
	session.FinishedAt = s.now()

	response := s.report(ctx, log, session)
	if err := s.fire(log, machine, EventReported); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"status":    response.Status,
		"headings":  len(session.Headings),
		"rotations": session.Rotations,
		"found":     session.Stats.FinalCount,
		"partial":   session.Partial,
	}).Info("Floor scan finished")

	emit(floor.ScanEvent{Type: floor.EventScanCompleted, Found: session.Stats.FinalCount, Result: response})

	return response, nil
}

// observe captures and classifies one frame. Failures are folded into a failed
// HeadingResult so the sweep can continue.
func (s *floorService) observe(ctx context.Context, log *logrus.Entry, heading int) (entity.HeadingResult, *camera.Frame) {
	log = log.WithField("heading", heading)

	captureCtx, cancel := s.collaboratorContext(ctx)
	frame, err := s.camera.Capture(captureCtx)
	cancel()
	if err != nil {
		err = response.Wrap(floor.ErrCapture, err)
		log.WithField("error", err.Error()).Error("Failed to capture frame")
		return entity.HeadingResult{Heading: heading, Failed: true, Error: err.Error()}, nil
	}

	classifyCtx, cancel := s.collaboratorContext(ctx)
	raw, err := s.classifier.Classify(classifyCtx, frame)
	cancel()
	if err != nil {
		if !errors.Is(err, floor.ErrClassifier) {
			err = response.Wrap(floor.ErrClassifier, err)
		}
		log.WithField("error", err.Error()).Error("Failed to classify frame")
		return entity.HeadingResult{Heading: heading, Failed: true, Error: err.Error()}, frame
	}

	if s.cfg.MaxDetections > 0 && len(raw) > s.cfg.MaxDetections {
		raw = raw[:s.cfg.MaxDetections]
	}

	objects, stats := s.pipeline.Run(raw, heading, frame.Height)
	log.WithFields(logrus.Fields{
		"detected":   stats.TotalDetected,
		"duplicates": stats.DuplicatesRemoved,
		"furniture":  stats.FurnitureRemoved,
		"malformed":  stats.MalformedRemoved,
		"unscorable": stats.UnscorableRemoved,
		"final":      stats.FinalCount,
	}).Info("Heading observed")

	return entity.HeadingResult{Heading: heading, Objects: objects, Stats: stats}, frame
}

func (s *floorService) rotate(ctx context.Context, log *logrus.Entry, heading int) error {
	rotateCtx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	if err := s.mover.Rotate(rotateCtx, s.cfg.TurnDirection, s.cfg.TurnDegrees); err != nil {
		err = response.Wrap(floor.ErrMovement, err)
		log.WithFields(logrus.Fields{
			"heading": heading,
			"error":   err.Error(),
		}).Error("Rotation not confirmed, aborting sweep")
		return err
	}
	return nil
}

// collaboratorContext detaches a single blocking call from request
// cancellation; the scan only stops between headings.
func (s *floorService) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.cfg.CollaboratorTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}

// fire advances the scan machine. A rejected event means the sweep loop and
// the transition table disagree, so the scan stops with ErrScanState.
func (s *floorService) fire(log *logrus.Entry, machine *Machine, event Event) error {
	from := machine.State()
	to, err := machine.Fire(event)
	if err != nil {
		err = response.Wrap(floor.ErrScanState, err)
		log.WithField("error", err.Error()).Error("Scan state machine rejected event")
		return err
	}
	log.WithFields(logrus.Fields{
		"from":  from,
		"event": event,
		"to":    to,
	}).Debug("Scan state transition")
	return nil
}

func (s *floorService) LatestSnapshot(ctx context.Context) (*floor.Snapshot, error) {
	if s.store == nil {
		return nil, floor.ErrSnapshotNotFound
	}

	snapshot, err := s.store.Latest(ctx)
	if err != nil {
		if !errors.Is(err, floor.ErrSnapshotNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Error("Failed to load latest snapshot")
		}
		return nil, err
	}
	return snapshot, nil
}
