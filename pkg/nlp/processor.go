package nlp

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type NLPProcessor struct {
	intents   map[string]IntentMapping
	locations map[string][]string
	objects   map[string][]string
	stopWords map[string]bool
	spanish   map[string]bool
	english   map[string]bool
}

func NewProcessor() INLPProcessor {
	stopWords := map[string]bool{
		"el": true, "la": true, "los": true, "las": true, "un": true, "una": true,
		"de": true, "del": true, "en": true, "por": true, "favor": true, "kuko": true,
		"the": true, "a": true, "an": true, "please": true, "to": true, "in": true,
		"on": true, "can": true, "you": true, "my": true, "mi": true,
	}

	spanish := map[string]bool{
		"el": true, "la": true, "los": true, "las": true, "por": true, "favor": true,
		"piso": true, "suelo": true, "revisa": true, "recoge": true, "ve": true,
		"habitacion": true, "cocina": true, "sala": true, "juguetes": true, "basura": true,
		"ropa": true, "que": true, "hay": true, "mira": true, "limpia": true, "puedes": true,
	}

	english := map[string]bool{
		"the": true, "please": true, "floor": true, "check": true, "pick": true, "up": true,
		"go": true, "bedroom": true, "kitchen": true, "living": true, "room": true,
		"toys": true, "trash": true, "clothes": true, "what": true, "is": true, "there": true,
		"look": true, "clean": true, "can": true, "you": true,
	}

	return &NLPProcessor{
		intents:   defaultIntentMappings(),
		locations: defaultLocations(),
		objects:   defaultObjects(),
		stopWords: stopWords,
		spanish:   spanish,
		english:   english,
	}
}

// ProcessCommand matches text against the intent vocabulary. Confidence is on
// a 0-100 scale.
func (nlp *NLPProcessor) ProcessCommand(text string) *CommandResult {
	cleanText := nlp.cleanText(text)
	tokens := nlp.extractTokens(cleanText)

	result := &CommandResult{
		Intent:   IntentUnknown,
		Language: nlp.DetectLanguage(text),
		Location: nlp.findEntity(tokens, cleanText, nlp.locations),
		Object:   nlp.findEntity(tokens, cleanText, nlp.objects),
	}

	type scored struct {
		mapping IntentMapping
		conf    *confidenceResult
	}
	var candidates []scored
	for _, mapping := range nlp.intents {
		conf := nlp.calculateIntentConfidence(tokens, cleanText, mapping)
		if conf.Confidence > 0.2 {
			candidates = append(candidates, scored{mapping, conf})
		}
	}

	if len(candidates) == 0 {
		return result
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].conf.Confidence != candidates[j].conf.Confidence {
			return candidates[i].conf.Confidence > candidates[j].conf.Confidence
		}
		return candidates[i].mapping.Intent < candidates[j].mapping.Intent
	})

	best := candidates[0]
	result.Intent = best.mapping.Intent
	result.Action = best.mapping.Action
	result.Confidence = math.Round(best.conf.Confidence * 100)
	result.Matches = best.conf.Matches

	return result
}

// DetectLanguage returns "en" or "es"; ties and unknown words go to Spanish.
func (nlp *NLPProcessor) DetectLanguage(text string) string {
	es, en := 0, 0
	for _, word := range strings.Fields(nlp.cleanText(text)) {
		if nlp.spanish[word] {
			es++
		}
		if nlp.english[word] {
			en++
		}
	}
	if en > es {
		return "en"
	}
	return "es"
}

func (nlp *NLPProcessor) GetIntentMapping(intent string) (IntentMapping, bool) {
	mapping, exists := nlp.intents[intent]
	return mapping, exists
}

func (nlp *NLPProcessor) calculateIntentConfidence(tokens []string, fullText string, mapping IntentMapping) *confidenceResult {
	var matches []MatchResult
	totalScore := 0.0

	for _, keyword := range mapping.Keywords {
		for _, token := range tokens {
			if token == keyword {
				matches = append(matches, MatchResult{Keyword: keyword, Score: 1.0, Type: "exact"})
				totalScore += 1.0
			}
		}
	}

	for _, synonym := range mapping.Synonyms {
		if strings.Contains(fullText, synonym) {
			matches = append(matches, MatchResult{Keyword: synonym, Score: 1.0, Type: "synonym"})
			totalScore += 1.2
		}
	}

	if len(matches) == 0 {
		for _, keyword := range mapping.Keywords {
			for _, token := range tokens {
				similarity := nlp.calculateSimilarity(token, keyword)
				if similarity > 0.75 && similarity < 1.0 {
					matches = append(matches, MatchResult{Keyword: keyword, Score: similarity * 0.7, Type: "fuzzy"})
					totalScore += similarity * 0.7
				}
			}
		}
	}

	confidence := totalScore / 1.5
	if len(matches) > 1 {
		confidence *= 1.1
	}

	return &confidenceResult{
		Confidence: math.Min(confidence, 1.0),
		Matches:    matches,
	}
}

func (nlp *NLPProcessor) findEntity(tokens []string, fullText string, vocabulary map[string][]string) string {
	names := make([]string, 0, len(vocabulary))
	for name := range vocabulary {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, word := range vocabulary[name] {
			if strings.Contains(word, " ") {
				if strings.Contains(fullText, word) {
					return name
				}
				continue
			}
			for _, token := range tokens {
				if token == word {
					return name
				}
			}
		}
	}
	return ""
}

func (nlp *NLPProcessor) calculateSimilarity(text1, text2 string) float64 {
	if text1 == text2 {
		return 1.0
	}

	distance := nlp.levenshteinDistance(text1, text2)
	maxLen := math.Max(float64(len(text1)), float64(len(text2)))
	if maxLen == 0 {
		return 0.0
	}

	return math.Max(0, 1.0-(float64(distance)/maxLen))
}

func (nlp *NLPProcessor) levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(matrix[i-1][j]+1, matrix[i][j-1]+1, matrix[i-1][j-1]+cost)
		}
	}

	return matrix[len(s1)][len(s2)]
}

// cleanText lowercases, strips accents and punctuation, and collapses spaces.
func (nlp *NLPProcessor) cleanText(text string) string {
	text = strings.ToLower(text)

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, text)

	result = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, result)

	return strings.Join(strings.Fields(result), " ")
}

func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

func (nlp *NLPProcessor) extractTokens(text string) []string {
	var tokens []string
	for _, word := range strings.Fields(text) {
		if len(word) > 1 && !nlp.stopWords[word] {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

type confidenceResult struct {
	Confidence float64
	Matches    []MatchResult
}

func defaultIntentMappings() map[string]IntentMapping {
	return map[string]IntentMapping{
		IntentInspect: {
			Intent:   IntentInspect,
			Action:   "inspect",
			Keywords: []string{"inspect", "check", "scan", "revisa", "revisar", "verifica", "chequea", "mira", "look", "inspecciona", "escanea"},
			Synonyms: []string{"what is on the floor", "que hay en el piso", "que hay en el suelo", "look around", "busca alrededor", "check the floor", "revisa el piso"},
		},
		IntentCollect: {
			Intent:   IntentCollect,
			Action:   "pick_up",
			Keywords: []string{"recoge", "levanta", "agarra", "collect", "grab", "toma"},
			Synonyms: []string{"pick up", "pick it up", "recogelo", "recoge eso"},
		},
		IntentNavigate: {
			Intent:   IntentNavigate,
			Action:   "go",
			Keywords: []string{"go", "ve", "camina", "muevete", "walk", "move", "anda"},
			Synonyms: []string{"go to", "ve a", "camina hacia", "move to"},
		},
		IntentClean: {
			Intent:   IntentClean,
			Action:   "clean",
			Keywords: []string{"clean", "limpia", "ordena", "tidy", "limpiar"},
			Synonyms: []string{"clean up", "tidy up", "limpia el cuarto", "ordena la habitacion"},
		},
	}
}

func defaultLocations() map[string][]string {
	return map[string][]string{
		"bedroom":     {"bedroom", "habitacion", "cuarto", "dormitorio"},
		"kitchen":     {"kitchen", "cocina"},
		"living_room": {"living room", "sala", "salon", "lounge"},
	}
}

func defaultObjects() map[string][]string {
	return map[string][]string{
		"toys":     {"toy", "toys", "juguete", "juguetes"},
		"trash":    {"trash", "garbage", "basura", "rubbish"},
		"clothing": {"clothes", "clothing", "ropa", "sock", "socks", "calcetin"},
	}
}
