package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcessCommandIntents(t *testing.T) {
	p := NewProcessor()

	tests := []struct {
		text     string
		intent   string
		action   string
		language string
	}{
		{"Kuko, revisa el piso por favor", IntentInspect, "inspect", "es"},
		{"Can you check the floor?", IntentInspect, "inspect", "en"},
		{"¿Qué hay en el suelo?", IntentInspect, "inspect", "es"},
		{"Recoge los juguetes de la habitación", IntentCollect, "pick_up", "es"},
		{"Please pick up the toys", IntentCollect, "pick_up", "en"},
		{"Ve a la cocina", IntentNavigate, "go", "es"},
		{"Clean up the living room", IntentClean, "clean", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := p.ProcessCommand(tt.text)
			assert.Equal(t, tt.intent, res.Intent)
			assert.Equal(t, tt.action, res.Action)
			assert.Equal(t, tt.language, res.Language)
			assert.Greater(t, res.Confidence, 50.0)
		})
	}
}

func TestProcessCommandEntities(t *testing.T) {
	p := NewProcessor()

	res := p.ProcessCommand("Recoge los juguetes de la habitación")
	assert.Equal(t, "toys", res.Object)
	assert.Equal(t, "bedroom", res.Location)

	res = p.ProcessCommand("Clean up the living room")
	assert.Equal(t, "living_room", res.Location)
	assert.Empty(t, res.Object)
}

func TestProcessCommandUnknown(t *testing.T) {
	p := NewProcessor()

	res := p.ProcessCommand("buenos días")

	assert.Equal(t, IntentUnknown, res.Intent)
	assert.Zero(t, res.Confidence)
	assert.Equal(t, "es", res.Language)
}

func TestProcessCommandFuzzy(t *testing.T) {
	p := NewProcessor()

	res := p.ProcessCommand("rebisa")

	assert.Equal(t, IntentInspect, res.Intent)
	assert.Less(t, res.Confidence, 50.0)
}

func TestDetectLanguage(t *testing.T) {
	p := NewProcessor()

	assert.Equal(t, "en", p.DetectLanguage("what is there on the floor"))
	assert.Equal(t, "es", p.DetectLanguage("qué hay en el piso"))
	assert.Equal(t, "es", p.DetectLanguage(""))
}
