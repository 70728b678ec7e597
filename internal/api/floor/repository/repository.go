package floorRepository

import (
	"KukoRobot/internal/api/floor"
	contextPkg "KukoRobot/pkg/context"
	"context"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SnapshotStore is one persistence backend for scan artifacts.
type SnapshotStore interface {
	Name() string
	Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error)
	Latest(ctx context.Context) (*floor.Snapshot, error)
}

type Repository interface {
	Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error)
	Latest(ctx context.Context) (*floor.Snapshot, error)
}

type repository struct {
	stores []SnapshotStore
	log    *logrus.Logger
}

// New fans writes out to every store. Latest is served by the first store, in
// the given order, that has a snapshot.
func New(log *logrus.Logger, stores ...SnapshotStore) Repository {
	var active []SnapshotStore
	for _, s := range stores {
		if s != nil {
			active = append(active, s)
		}
	}

	return &repository{
		stores: active,
		log:    log,
	}
}

func (r *repository) Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var locations []string
	var errs []error
	for _, store := range r.stores {
		paths, err := store.Save(ctx, artifacts)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"session_id": artifacts.SessionID,
				"store":      store.Name(),
				"error":      err.Error(),
			}).Error("Failed to save scan artifacts")
			errs = append(errs, fmt.Errorf("%s: %w", store.Name(), err))
			continue
		}
		locations = append(locations, paths...)
	}

	return locations, errors.Join(errs...)
}

func (r *repository) Latest(ctx context.Context) (*floor.Snapshot, error) {
	requestID := contextPkg.GetRequestID(ctx)

	for _, store := range r.stores {
		snapshot, err := store.Latest(ctx)
		if err == nil {
			return snapshot, nil
		}
		if !errors.Is(err, floor.ErrSnapshotNotFound) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"store":      store.Name(),
				"error":      err.Error(),
			}).Warn("Failed to read latest snapshot, trying next store")
		}
	}

	return nil, floor.ErrSnapshotNotFound
}

func encodeSnapshot(snapshot floor.Snapshot) ([]byte, error) {
	return json.MarshalIndent(snapshot, "", "  ")
}

func decodeSnapshot(data []byte) (*floor.Snapshot, error) {
	var snapshot floor.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
