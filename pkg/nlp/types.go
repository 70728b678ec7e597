package nlp

type CommandResult struct {
	Action     string        `json:"action"`
	Location   string        `json:"location,omitempty"`
	Object     string        `json:"object,omitempty"`
	Intent     string        `json:"intent"`
	Confidence float64       `json:"confidence"`
	Language   string        `json:"language"`
	Matches    []MatchResult `json:"matches"`
}

type MatchResult struct {
	Keyword string  `json:"keyword"`
	Score   float64 `json:"score"`
	Type    string  `json:"type"`
}

type INLPProcessor interface {
	ProcessCommand(text string) *CommandResult
	DetectLanguage(text string) string
	GetIntentMapping(intent string) (IntentMapping, bool)
}

// IntentMapping lists the words that trigger one robot intent.
type IntentMapping struct {
	Intent   string   `json:"intent"`
	Action   string   `json:"action"`
	Keywords []string `json:"keywords"`
	Synonyms []string `json:"synonyms"`
}

const (
	IntentInspect  = "inspect_room"
	IntentCollect  = "collect_object"
	IntentNavigate = "navigate"
	IntentClean    = "clean"
	IntentUnknown  = "unknown"
)
