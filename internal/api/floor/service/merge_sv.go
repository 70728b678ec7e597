package floorService

import (
	"KukoRobot/internal/entity"
	"strings"
)

// Merger collapses detections of the same physical object seen from adjacent
// headings. Descriptions are compared on shared lowercase words.
type Merger struct {
	minTokens     int
	weakTokens    int
	maxHeadingGap int
	stopWords     map[string]bool
}

func NewMerger(cfg Config) *Merger {
	stop := make(map[string]bool, len(cfg.MergeStopWords))
	for _, w := range cfg.MergeStopWords {
		stop[strings.ToLower(w)] = true
	}
	return &Merger{
		minTokens:     cfg.MergeMinTokens,
		weakTokens:    cfg.MergeWeakTokens,
		maxHeadingGap: cfg.MergeMaxHeadingGap,
		stopWords:     stop,
	}
}

// Merge flattens per-heading results in sweep order and removes cross-heading
// duplicates, keeping the more confident detection. Failed headings contribute
// nothing. It returns the merged list in priority order and the merge count.
func (m *Merger) Merge(results []entity.HeadingResult) ([]entity.DetectedObject, int) {
	var kept []entity.DetectedObject
	var keptTokens []map[string]bool
	merged := 0

	for _, result := range results {
		if result.Failed {
			continue
		}
		for _, candidate := range result.Objects {
			tokens := m.Tokens(candidate.Description)

			match := -1
			for i, existing := range kept {
				if m.sameObject(existing, keptTokens[i], candidate, tokens) {
					match = i
					break
				}
			}

			if match == -1 {
				kept = append(kept, candidate)
				keptTokens = append(keptTokens, tokens)
				continue
			}

			merged++
			if candidate.Confidence > kept[match].Confidence {
				kept[match] = candidate
				keptTokens[match] = tokens
			}
		}
	}

	SortByPriority(kept)
	return kept, merged
}

func (m *Merger) sameObject(a entity.DetectedObject, aTokens map[string]bool, b entity.DetectedObject, bTokens map[string]bool) bool {
	if a.SourceHeading == b.SourceHeading {
		return false
	}

	shared := 0
	for t := range bTokens {
		if aTokens[t] {
			shared++
		}
	}

	if m.minTokens > 0 && shared >= m.minTokens {
		return true
	}
	return m.weakTokens > 0 &&
		shared >= m.weakTokens &&
		a.Category == b.Category &&
		HeadingGap(a.SourceHeading, b.SourceHeading) <= m.maxHeadingGap
}

// Tokens lowercases a description and splits it on whitespace. Configured stop
// words are skipped.
func (m *Merger) Tokens(description string) map[string]bool {
	words := strings.Fields(strings.ToLower(description))

	tokens := make(map[string]bool, len(words))
	for _, w := range words {
		if m.stopWords[w] {
			continue
		}
		tokens[w] = true
	}
	return tokens
}

// HeadingGap is the smallest angle between two headings in degrees.
func HeadingGap(a, b int) int {
	d := (a - b) % 360
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}
