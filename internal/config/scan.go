package config

import (
	floorService "KukoRobot/internal/api/floor/service"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadScanConfig starts from the built-in defaults and applies any SCAN_*
// environment overrides.
func LoadScanConfig() (floorService.Config, error) {
	cfg := floorService.DefaultConfig()
	var err error

	if cfg.IoUThreshold, err = envFloat("SCAN_IOU_THRESHOLD", cfg.IoUThreshold); err != nil {
		return cfg, err
	}
	if cfg.ScanPositions, err = envInt("SCAN_POSITIONS", cfg.ScanPositions); err != nil {
		return cfg, err
	}
	if cfg.TurnDegrees, err = envInt("SCAN_TURN_DEGREES", cfg.TurnDegrees); err != nil {
		return cfg, err
	}
	if cfg.MergeMinTokens, err = envInt("SCAN_MERGE_MIN_TOKENS", cfg.MergeMinTokens); err != nil {
		return cfg, err
	}
	if cfg.MergeWeakTokens, err = envInt("SCAN_MERGE_WEAK_TOKENS", cfg.MergeWeakTokens); err != nil {
		return cfg, err
	}
	if cfg.MergeMaxHeadingGap, err = envInt("SCAN_MERGE_MAX_HEADING_GAP", cfg.MergeMaxHeadingGap); err != nil {
		return cfg, err
	}
	if cfg.MaxDetections, err = envInt("SCAN_MAX_DETECTIONS", cfg.MaxDetections); err != nil {
		return cfg, err
	}
	if cfg.ImageHeight, err = envInt("SCAN_IMAGE_HEIGHT", cfg.ImageHeight); err != nil {
		return cfg, err
	}
	if cfg.SummaryTopN, err = envInt("SCAN_SUMMARY_TOP_N", cfg.SummaryTopN); err != nil {
		return cfg, err
	}
	if cfg.CollaboratorTimeout, err = envDuration("SCAN_COLLABORATOR_TIMEOUT", cfg.CollaboratorTimeout); err != nil {
		return cfg, err
	}

	if dir := os.Getenv("SCAN_TURN_DIRECTION"); dir != "" {
		cfg.TurnDirection = strings.ToLower(dir)
	}

	if words := splitList(os.Getenv("SCAN_MERGE_STOP_WORDS")); len(words) > 0 {
		cfg.MergeStopWords = words
	}

	// extra terms extend the furniture group rather than replace it
	if terms := splitList(os.Getenv("SCAN_FURNITURE_TERMS")); len(terms) > 0 {
		cfg.Vocabulary["furniture"] = append(cfg.Vocabulary["furniture"], terms...)
	}

	return cfg, validateScanConfig(cfg)
}

func validateScanConfig(cfg floorService.Config) error {
	switch {
	case cfg.IoUThreshold <= 0 || cfg.IoUThreshold > 1:
		return fmt.Errorf("SCAN_IOU_THRESHOLD must be in (0, 1], got %v", cfg.IoUThreshold)
	case cfg.ScanPositions < 1:
		return fmt.Errorf("SCAN_POSITIONS must be at least 1, got %d", cfg.ScanPositions)
	case cfg.TurnDegrees <= 0 || cfg.TurnDegrees >= 360:
		return fmt.Errorf("SCAN_TURN_DEGREES must be in (0, 360), got %d", cfg.TurnDegrees)
	case cfg.TurnDirection != "right" && cfg.TurnDirection != "left":
		return fmt.Errorf("SCAN_TURN_DIRECTION must be right or left, got %q", cfg.TurnDirection)
	case cfg.MergeWeakTokens > cfg.MergeMinTokens:
		return fmt.Errorf("SCAN_MERGE_WEAK_TOKENS (%d) cannot exceed SCAN_MERGE_MIN_TOKENS (%d)", cfg.MergeWeakTokens, cfg.MergeMinTokens)
	case cfg.ImageHeight <= 0:
		return fmt.Errorf("SCAN_IMAGE_HEIGHT must be positive, got %d", cfg.ImageHeight)
	}
	return nil
}

func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envFloat(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(strings.ToLower(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
