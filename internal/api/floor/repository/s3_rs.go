package floorRepository

import (
	"KukoRobot/internal/api/floor"
	s3Pkg "KukoRobot/pkg/s3"
	"context"
	"errors"
	"path"
	"sort"
)

type s3Store struct {
	s3 s3Pkg.ItfS3
}

// NewS3Store mirrors artifacts under snapshots/<session>/ in the bucket.
func NewS3Store(s3 s3Pkg.ItfS3) SnapshotStore {
	if s3 == nil {
		return nil
	}
	return &s3Store{s3: s3}
}

func (s *s3Store) Name() string {
	return "s3"
}

func (s *s3Store) Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error) {
	data, err := encodeSnapshot(artifacts.Snapshot)
	if err != nil {
		return nil, err
	}

	prefix := path.Join("snapshots", artifacts.SessionID)

	location, err := s.s3.UploadBytes(ctx, path.Join(prefix, coordinatesFile), data, "application/json")
	if err != nil {
		return nil, err
	}
	locations := []string{location}

	for _, heading := range sortedHeadings(artifacts.Annotations) {
		location, err := s.s3.UploadBytes(ctx, path.Join(prefix, annotationName(heading)), artifacts.Annotations[heading], "image/jpeg")
		if err != nil {
			return locations, err
		}
		locations = append(locations, location)
	}

	if _, err := s.s3.UploadBytes(ctx, path.Join("snapshots", latestFile), data, "application/json"); err != nil {
		return locations, err
	}

	return locations, nil
}

func (s *s3Store) Latest(ctx context.Context) (*floor.Snapshot, error) {
	data, err := s.s3.Download(ctx, path.Join("snapshots", latestFile))
	if errors.Is(err, s3Pkg.ErrObjectNotFound) {
		return nil, floor.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}

	return decodeSnapshot(data)
}

func sortedHeadings(annotations map[int][]byte) []int {
	headings := make([]int, 0, len(annotations))
	for h := range annotations {
		headings = append(headings, h)
	}
	sort.Ints(headings)
	return headings
}
