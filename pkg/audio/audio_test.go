package audio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		body, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(body, &gotBody)
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3-fake-mp3"))
	}))
	defer srv.Close()

	tts := newTTSService("secret", "voice-1", srv.URL+"/v1/text-to-speech/")

	audio, err := tts.Synthesize(context.Background(), "El piso está limpio")

	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-fake-mp3"), audio)
	assert.Equal(t, "/v1/text-to-speech/voice-1", gotPath)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "El piso está limpio", gotBody["text"])
}

func TestSynthesizeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tts := newTTSService("bad", "voice-1", srv.URL+"/")

	_, err := tts.Synthesize(context.Background(), "hola")

	assert.Error(t, err)
}

func TestLanguageTag(t *testing.T) {
	assert.Equal(t, "en", LanguageTag("English"))
	assert.Equal(t, "es", LanguageTag("spanish"))
	assert.Equal(t, "", LanguageTag("chinese"))
}
