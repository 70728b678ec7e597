package entity

import (
	"KukoRobot/pkg/camera"
	"time"
)

type ScanStats struct {
	TotalDetected     int `json:"total_detected"`
	DuplicatesRemoved int `json:"duplicates_removed"`
	FurnitureRemoved  int `json:"furniture_removed"`
	MalformedRemoved  int `json:"malformed_removed"`
	UnscorableRemoved int `json:"unscorable_removed"`
	CrossAngleMerged  int `json:"cross_angle_merged"`
	FinalCount        int `json:"final_count"`
}

// Add accumulates per-heading counters. FinalCount is owned by the caller.
func (s *ScanStats) Add(other ScanStats) {
	s.TotalDetected += other.TotalDetected
	s.DuplicatesRemoved += other.DuplicatesRemoved
	s.FurnitureRemoved += other.FurnitureRemoved
	s.MalformedRemoved += other.MalformedRemoved
	s.UnscorableRemoved += other.UnscorableRemoved
}

type HeadingResult struct {
	Heading int              `json:"heading"`
	Objects []DetectedObject `json:"objects"`
	Stats   ScanStats        `json:"stats"`
	Failed  bool             `json:"failed"`
	Error   string           `json:"error,omitempty"`
}

// ScanSession is the arena for one check-floor request. It is owned by a single
// orchestrator run and handed to the reporter once finished.
type ScanSession struct {
	ID                string
	RequestID         string
	Language          string
	StartedAt         time.Time
	FinishedAt        time.Time
	Headings          []int
	PerHeadingResults map[int]HeadingResult
	Frames            map[int]*camera.Frame
	MergedObjects     []DetectedObject
	Stats             ScanStats
	Rotations         int
	Partial           bool
	EarlyExit         bool
	Warnings          []string
}

func NewScanSession(id, requestID, language string, now time.Time) *ScanSession {
	return &ScanSession{
		ID:                id,
		RequestID:         requestID,
		Language:          language,
		StartedAt:         now,
		PerHeadingResults: make(map[int]HeadingResult),
		Frames:            make(map[int]*camera.Frame),
	}
}

// Record stores the outcome observed at heading h.
func (s *ScanSession) Record(result HeadingResult, frame *camera.Frame) {
	s.Headings = append(s.Headings, result.Heading)
	s.PerHeadingResults[result.Heading] = result
	if frame != nil {
		s.Frames[result.Heading] = frame
	}
	s.Stats.Add(result.Stats)
}

func (s *ScanSession) Warn(msg string) {
	s.Warnings = append(s.Warnings, msg)
}

// Results returns the per-heading results in the order the headings were visited.
func (s *ScanSession) Results() []HeadingResult {
	results := make([]HeadingResult, 0, len(s.Headings))
	for _, h := range s.Headings {
		results = append(results, s.PerHeadingResults[h])
	}
	return results
}

// Failed reports whether every visited heading failed to produce an observation.
func (s *ScanSession) Failed() bool {
	if len(s.Headings) == 0 {
		return true
	}
	for _, r := range s.PerHeadingResults {
		if !r.Failed {
			return false
		}
	}
	return true
}
