package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/pkg/camera"
	"KukoRobot/pkg/utils"
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type IFloorService interface {
	CheckFloor(ctx context.Context, language string, observer Observer) (*floor.CheckFloorResponse, error)
	LatestSnapshot(ctx context.Context) (*floor.Snapshot, error)
}

// IClassifier turns one frame into raw detections.
type IClassifier interface {
	Classify(ctx context.Context, frame *camera.Frame) ([]floor.RawDetection, error)
}

// IMover turns the chassis in place and returns once the robot acknowledges.
type IMover interface {
	Rotate(ctx context.Context, direction string, degrees int) error
}

type ISnapshotStore interface {
	Save(ctx context.Context, artifacts floor.Artifacts) ([]string, error)
	Latest(ctx context.Context) (*floor.Snapshot, error)
}

// Observer receives progress events while a scan runs. It is called from the
// scanning goroutine and must not block for long.
type Observer func(event floor.ScanEvent)

type Config struct {
	IoUThreshold       float64
	Vocabulary         map[string][]string
	ScanPositions      int
	TurnDegrees        int
	TurnDirection      string
	MergeMinTokens     int
	MergeWeakTokens    int
	MergeMaxHeadingGap int
	// MergeStopWords is empty by default so every word counts toward overlap.
	MergeStopWords      []string
	MaxDetections       int
	CollaboratorTimeout time.Duration
	ImageHeight         int
	SummaryTopN         int
}

func DefaultConfig() Config {
	return Config{
		IoUThreshold: 0.5,
		Vocabulary: map[string][]string{
			"furniture": {"sofa", "couch", "table", "chair", "bed", "desk", "shelf", "cabinet", "dresser", "wardrobe"},
			"fixture":   {"appliance", "refrigerator", "door", "window", "rug", "carpet", "lamp", "radiator"},
		},
		ScanPositions:       8,
		TurnDegrees:         45,
		TurnDirection:       "right",
		MergeMinTokens:      3,
		MergeWeakTokens:     2,
		MergeMaxHeadingGap:  45,
		MaxDetections:       5,
		CollaboratorTimeout: 15 * time.Second,
		ImageHeight:         1080,
		SummaryTopN:         3,
	}
}

type floorService struct {
	log        *logrus.Logger
	cfg        Config
	camera     camera.ICamera
	classifier IClassifier
	mover      IMover
	store      ISnapshotStore
	utils      utils.IUtils
	pipeline   *Pipeline
	merger     *Merger
	scanMu     sync.Mutex
	now        func() time.Time
	newMachine func() *Machine
}

func NewFloorService(
	log *logrus.Logger,
	cfg Config,
	cam camera.ICamera,
	classifier IClassifier,
	mover IMover,
	store ISnapshotStore,
	utils utils.IUtils,
) IFloorService {
	return &floorService{
		log:        log,
		cfg:        cfg,
		camera:     cam,
		classifier: classifier,
		mover:      mover,
		store:      store,
		utils:      utils,
		pipeline:   NewPipeline(cfg),
		merger:     NewMerger(cfg),
		now:        time.Now,
		newMachine: NewMachine,
	}
}
