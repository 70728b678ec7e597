package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScanConfigDefaults(t *testing.T) {
	cfg, err := LoadScanConfig()

	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.IoUThreshold)
	assert.Equal(t, 8, cfg.ScanPositions)
	assert.Equal(t, 45, cfg.TurnDegrees)
	assert.Equal(t, "right", cfg.TurnDirection)
	assert.Equal(t, 15*time.Second, cfg.CollaboratorTimeout)
	assert.Empty(t, cfg.MergeStopWords)
}

func TestLoadScanConfigOverrides(t *testing.T) {
	t.Setenv("SCAN_IOU_THRESHOLD", "0.6")
	t.Setenv("SCAN_POSITIONS", "4")
	t.Setenv("SCAN_TURN_DEGREES", "90")
	t.Setenv("SCAN_TURN_DIRECTION", "LEFT")
	t.Setenv("SCAN_COLLABORATOR_TIMEOUT", "5s")
	t.Setenv("SCAN_FURNITURE_TERMS", "Ottoman, bookcase ,")
	t.Setenv("SCAN_MERGE_STOP_WORDS", "The, a")

	cfg, err := LoadScanConfig()

	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.IoUThreshold)
	assert.Equal(t, 4, cfg.ScanPositions)
	assert.Equal(t, 90, cfg.TurnDegrees)
	assert.Equal(t, "left", cfg.TurnDirection)
	assert.Equal(t, 5*time.Second, cfg.CollaboratorTimeout)
	assert.Contains(t, cfg.Vocabulary["furniture"], "ottoman")
	assert.Contains(t, cfg.Vocabulary["furniture"], "bookcase")
	assert.Contains(t, cfg.Vocabulary["furniture"], "sofa")
	assert.Equal(t, []string{"the", "a"}, cfg.MergeStopWords)
}

func TestLoadScanConfigRejects(t *testing.T) {
	tests := map[string]string{
		"SCAN_IOU_THRESHOLD":  "1.5",
		"SCAN_POSITIONS":      "zero",
		"SCAN_TURN_DEGREES":   "360",
		"SCAN_TURN_DIRECTION": "up",
		"SCAN_IMAGE_HEIGHT":   "0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadScanConfig()
			assert.Error(t, err)
		})
	}
}

func TestNewValidatorUsesJSONNames(t *testing.T) {
	type req struct {
		Language string `json:"language" validate:"omitempty,oneof=es en"`
	}

	err := NewValidator().Struct(req{Language: "fr"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "'language'")
}
