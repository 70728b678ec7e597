package floorService

import (
	"KukoRobot/internal/api/floor"
	"KukoRobot/internal/entity"
	"KukoRobot/pkg/annotate"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

const SnapshotTimeLayout = "2006-01-02 15:04:05"

var spanishCategory = map[entity.Category]string{
	entity.CategoryToy:      "juguete",
	entity.CategoryTrash:    "basura",
	entity.CategoryClothing: "ropa",
	entity.CategoryOther:    "objeto",
}

// report formats a finished session and hands the artifacts to the stores.
// Store and annotation failures become warnings.
func (s *floorService) report(ctx context.Context, log *logrus.Entry, session *entity.ScanSession) *floor.CheckFloorResponse {
	snapshot := BuildSnapshot(session)

	annotations, warnings := BuildAnnotations(session)
	for _, w := range warnings {
		log.Warn(w)
		session.Warn(w)
	}

	var paths []string
	if s.store != nil {
		saved, err := s.store.Save(ctx, floor.Artifacts{
			SessionID:   session.ID,
			Snapshot:    snapshot,
			Annotations: annotations,
		})
		if err != nil {
			log.WithField("error", err.Error()).Error("Failed to persist scan artifacts")
			session.Warn("snapshot not fully persisted")
		}
		paths = saved
	}

	summary := BuildSummary(session, s.cfg.SummaryTopN)

	return &floor.CheckFloorResponse{
		SessionID: session.ID,
		Status:    summary.Status,
		Partial:   session.Partial,
		EarlyExit: session.EarlyExit,
		Headings:  session.Headings,
		Rotations: session.Rotations,
		Stats:     session.Stats,
		Summary:   summary,
		Snapshot:  snapshot,
		Artifacts: paths,
		Warnings:  session.Warnings,
		Duration:  session.FinishedAt.Sub(session.StartedAt).String(),
	}
}

// BuildSnapshot renders the coordinates record consumed by the grasping side.
// id is the 0-based position in the final order.
func BuildSnapshot(session *entity.ScanSession) floor.Snapshot {
	objects := make([]floor.SnapshotObject, 0, len(session.MergedObjects))
	for i, o := range session.MergedObjects {
		objects = append(objects, floor.SnapshotObject{
			ID:          i,
			Category:    string(o.Category),
			Description: o.Description,
			Confidence:  o.Confidence,
			BBox:        o.BBox,
			GraspPoint:  o.GraspPoint,
			Priority:    o.Priority(),
			Heading:     o.SourceHeading,
		})
	}

	return floor.Snapshot{
		SessionID: session.ID,
		Timestamp: session.FinishedAt.Format(SnapshotTimeLayout),
		Partial:   session.Partial,
		Objects:   objects,
	}
}

// BuildAnnotations draws the surviving objects onto the frame of the heading
// they were last confirmed at.
func BuildAnnotations(session *entity.ScanSession) (map[int][]byte, []string) {
	boxes := make(map[int][]annotate.Box)
	for i, o := range session.MergedObjects {
		if !o.HasLocation() {
			continue
		}
		boxes[o.SourceHeading] = append(boxes[o.SourceHeading], annotate.Box{
			BBox:     *o.BBox,
			Label:    fmt.Sprintf("#%d %s %.0f%%", i, o.Category, o.Confidence),
			Category: string(o.Category),
		})
	}

	headings := make([]int, 0, len(boxes))
	for h := range boxes {
		headings = append(headings, h)
	}
	sort.Ints(headings)

	annotations := make(map[int][]byte, len(boxes))
	var warnings []string
	for _, h := range headings {
		frame, ok := session.Frames[h]
		if !ok || frame == nil {
			continue
		}
		data, err := annotate.Annotate(frame.Data, boxes[h])
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("heading %d: annotation failed: %s", h, err.Error()))
			continue
		}
		annotations[h] = data
	}
	return annotations, warnings
}

// BuildSummary renders the spoken/displayed result in the session language.
func BuildSummary(session *entity.ScanSession, topN int) floor.Summary {
	lang := floor.NormalizeLanguage(session.Language)
	count := len(session.MergedObjects)

	summary := floor.Summary{
		Language:   lang,
		TotalCount: count,
		Partial:    session.Partial,
		Lines:      []string{},
		Objects:    []floor.SummaryObject{},
	}

	switch {
	case session.Partial:
		summary.Status = floor.StatusIncomplete
		summary.Headline = incompleteHeadline(lang, count)
	case count == 0:
		summary.Status = floor.StatusClear
		summary.Headline = clearHeadline(lang)
	default:
		summary.Status = floor.StatusFound
		summary.Headline = foundHeadline(lang, count)
	}

	if topN <= 0 || topN > count {
		topN = count
	}
	for i, o := range session.MergedObjects[:topN] {
		label := categoryLabel(lang, o.Category)
		text := objectLine(lang, i+1, label, o.DistanceCM, o.SourceHeading)
		summary.Objects = append(summary.Objects, floor.SummaryObject{
			Rank:        i + 1,
			Category:    string(o.Category),
			Label:       label,
			Description: o.Description,
			DistanceCM:  o.DistanceCM,
			Heading:     o.SourceHeading,
			Text:        text,
		})
		summary.Lines = append(summary.Lines, text)
	}

	return summary
}

// Intro is spoken when a scan starts; Expanding when the robot starts turning.
func Intro(lang string) string {
	if floor.NormalizeLanguage(lang) == floor.LanguageEnglish {
		return "I am checking"
	}
	return "Estoy chequeando"
}

func Expanding(lang string) string {
	if floor.NormalizeLanguage(lang) == floor.LanguageEnglish {
		return "I will look around"
	}
	return "Voy a buscar alrededor"
}

func clearHeadline(lang string) string {
	if lang == floor.LanguageEnglish {
		return "The floor is clean"
	}
	return "El piso está limpio"
}

func foundHeadline(lang string, count int) string {
	if lang == floor.LanguageEnglish {
		return fmt.Sprintf("I found %d %s", count, plural(count, "object", "objects"))
	}
	return fmt.Sprintf("Encontré %d %s", count, plural(count, "objeto", "objetos"))
}

func incompleteHeadline(lang string, count int) string {
	if lang == floor.LanguageEnglish {
		return fmt.Sprintf("Scan incomplete, found %d %s so far", count, plural(count, "object", "objects"))
	}
	return fmt.Sprintf("Escaneo incompleto, encontré %d %s hasta ahora", count, plural(count, "objeto", "objetos"))
}

func categoryLabel(lang string, category entity.Category) string {
	if lang == floor.LanguageEnglish {
		return string(category)
	}
	if label, ok := spanishCategory[category]; ok {
		return label
	}
	return "objeto"
}

func objectLine(lang string, rank int, label string, distance *float64, heading int) string {
	var b strings.Builder
	if lang == floor.LanguageEnglish {
		fmt.Fprintf(&b, "Object %d: %s", rank, label)
		if distance != nil {
			fmt.Fprintf(&b, " at %.0f centimeters", *distance)
		}
		if heading != 0 {
			fmt.Fprintf(&b, ", %d degrees to the right", heading)
		}
		return b.String()
	}

	fmt.Fprintf(&b, "Objeto %d: %s", rank, label)
	if distance != nil {
		fmt.Fprintf(&b, " a %.0f centímetros", *distance)
	}
	if heading != 0 {
		fmt.Fprintf(&b, ", %d grados a la derecha", heading)
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
