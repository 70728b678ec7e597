package floorService

import (
	"KukoRobot/internal/entity"
	"sort"
	"strings"
)

// CategoryFilter drops fixed furniture and fixtures by description keyword.
type CategoryFilter struct {
	terms []string
}

// NewCategoryFilter flattens a group → terms vocabulary. Terms are matched as
// case-insensitive substrings of the description.
func NewCategoryFilter(vocabulary map[string][]string) *CategoryFilter {
	seen := make(map[string]bool)
	var terms []string
	for _, group := range vocabulary {
		for _, term := range group {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" || seen[term] {
				continue
			}
			seen[term] = true
			terms = append(terms, term)
		}
	}
	sort.Strings(terms)

	return &CategoryFilter{terms: terms}
}

// Match returns the first vocabulary term found in description.
func (f *CategoryFilter) Match(description string) (string, bool) {
	desc := strings.ToLower(description)
	for _, term := range f.terms {
		if strings.Contains(desc, term) {
			return term, true
		}
	}
	return "", false
}

func (f *CategoryFilter) Filter(objects []entity.DetectedObject) []entity.DetectedObject {
	kept := make([]entity.DetectedObject, 0, len(objects))
	for _, o := range objects {
		if _, furniture := f.Match(o.Description); furniture {
			continue
		}
		kept = append(kept, o)
	}
	return kept
}
