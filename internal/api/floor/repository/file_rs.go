package floorRepository

import (
	"KukoRobot/internal/api/floor"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	coordinatesFile = "coordinates.json"
	latestFile      = "latest.json"
)

type fileStore struct {
	dir string
}

// NewFileStore keeps one directory per session under dir plus a latest.json
// copy of the most recent snapshot.
func NewFileStore(dir string) SnapshotStore {
	return &fileStore{dir: dir}
}

func (s *fileStore) Name() string {
	return "file"
}

func (s *fileStore) Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error) {
	sessionDir := filepath.Join(s.dir, artifacts.SessionID)
	if err := os.MkdirAll(sessionDir, 0o755); err != nil {
		return nil, err
	}

	data, err := encodeSnapshot(artifacts.Snapshot)
	if err != nil {
		return nil, err
	}

	coordinates := filepath.Join(sessionDir, coordinatesFile)
	if err := os.WriteFile(coordinates, data, 0o644); err != nil {
		return nil, err
	}
	paths := []string{coordinates}

	for _, heading := range sortedHeadings(artifacts.Annotations) {
		path := filepath.Join(sessionDir, annotationName(heading))
		if err := os.WriteFile(path, artifacts.Annotations[heading], 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}

	if err := writeAtomic(filepath.Join(s.dir, latestFile), data); err != nil {
		return paths, err
	}

	return paths, nil
}

func (s *fileStore) Latest(ctx context.Context) (*floor.Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, latestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, floor.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(data)
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".latest-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func annotationName(heading int) string {
	return fmt.Sprintf("annotated_%03d.jpg", heading)
}
