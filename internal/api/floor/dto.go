package floor

import (
	"KukoRobot/internal/entity"
	"KukoRobot/pkg/geometry"
	"time"
)

const (
	LanguageSpanish = "es"
	LanguageEnglish = "en"
)

// NormalizeLanguage maps anything outside the two supported tags to Spanish.
func NormalizeLanguage(lang string) string {
	switch lang {
	case LanguageEnglish, "en-US", "en-GB", "english":
		return LanguageEnglish
	default:
		return LanguageSpanish
	}
}

// RawDetection is one entry of the classifier response. Every field may be
// missing or malformed; validation happens in the detection pipeline.
type RawDetection struct {
	Category      string    `json:"category"`
	Description   string    `json:"description"`
	Confidence    *float64  `json:"confidence"`
	BBox          []float64 `json:"bbox"`
	SizeEstimate  string    `json:"size_estimate"`
	Accessibility string    `json:"accessibility"`
	ParseError    error     `json:"-"`
}

type CheckFloorRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=es en"`
}

type SummaryObject struct {
	Rank        int      `json:"rank"`
	Category    string   `json:"category"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	DistanceCM  *float64 `json:"distance_cm,omitempty"`
	Heading     int      `json:"heading"`
	Text        string   `json:"text"`
}

type Summary struct {
	Language   string          `json:"language"`
	Status     string          `json:"status"`
	Headline   string          `json:"headline"`
	Lines      []string        `json:"lines"`
	Objects    []SummaryObject `json:"objects"`
	TotalCount int             `json:"total_count"`
	Partial    bool            `json:"partial"`
}

// Speech joins the headline and per-object lines for text-to-speech.
func (s Summary) Speech() string {
	text := s.Headline
	for _, line := range s.Lines {
		text += ". " + line
	}
	return text
}

// SnapshotObject field names and the bbox / grasp_point conventions are read by
// the grasping side and must not change.
type SnapshotObject struct {
	ID          int             `json:"id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Confidence  float64         `json:"confidence"`
	BBox        *geometry.BBox  `json:"bbox"`
	GraspPoint  *geometry.Point `json:"grasp_point"`
	Priority    float64         `json:"priority"`
	Heading     int             `json:"heading"`
}

type Snapshot struct {
	SessionID string           `json:"session_id"`
	Timestamp string           `json:"timestamp"`
	Partial   bool             `json:"partial"`
	Objects   []SnapshotObject `json:"objects"`
}

// Artifacts is everything the stores persist for one scan.
type Artifacts struct {
	SessionID   string
	Snapshot    Snapshot
	Annotations map[int][]byte
}

type CheckFloorResponse struct {
	SessionID string           `json:"session_id"`
	Status    string           `json:"status"`
	Partial   bool             `json:"partial"`
	EarlyExit bool             `json:"early_exit"`
	Headings  []int            `json:"headings"`
	Rotations int              `json:"rotations"`
	Stats     entity.ScanStats `json:"stats"`
	Summary   Summary          `json:"summary"`
	Snapshot  Snapshot         `json:"snapshot"`
	Artifacts []string         `json:"artifacts,omitempty"`
	Warnings  []string         `json:"warnings,omitempty"`
	Duration  string           `json:"duration"`
}

type EventType string

const (
	EventScanStarted     EventType = "scan_started"
	EventHeadingObserved EventType = "heading_observed"
	EventRotating        EventType = "rotating"
	EventScanCompleted   EventType = "scan_completed"
	EventScanFailed      EventType = "scan_failed"
)

type ScanEvent struct {
	Type      EventType           `json:"type"`
	SessionID string              `json:"session_id"`
	Heading   int                 `json:"heading"`
	Found     int                 `json:"found"`
	Error     string              `json:"error,omitempty"`
	Result    *CheckFloorResponse `json:"result,omitempty"`
	At        time.Time           `json:"at"`
}

const (
	StatusClear      = "clear"
	StatusFound      = "found"
	StatusIncomplete = "incomplete"
)
