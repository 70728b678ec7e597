package utils

import (
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULIDFromTimestamp(t *testing.T) {
	at := time.Date(2025, 10, 13, 1, 47, 3, 0, time.UTC)

	id, err := New().NewULIDFromTimestamp(at)
	require.NoError(t, err)

	parsed, err := ulid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, ulid.Timestamp(at), parsed.Time())
}

func TestValidateAudioFile(t *testing.T) {
	u := New()
	header := func(name, contentType string, size int64) *multipart.FileHeader {
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", contentType)
		return &multipart.FileHeader{Filename: name, Header: h, Size: size}
	}

	assert.NoError(t, u.ValidateAudioFile(header("command.WAV", "audio/wav", 1024)))
	assert.NoError(t, u.ValidateAudioFile(header("blob", "audio/webm", 1024)))
	assert.ErrorIs(t, u.ValidateAudioFile(nil), ErrNoFile)
	assert.ErrorIs(t, u.ValidateAudioFile(header("command.mp3", "audio/mpeg", 50*1024*1024)), ErrFileTooLarge)
	assert.ErrorIs(t, u.ValidateAudioFile(header("photo.jpg", "image/jpeg", 1024)), ErrUnsupportedFormat)
}

func TestEncodeBase64(t *testing.T) {
	assert.Equal(t, "aG9sYQ==", New().EncodeBase64([]byte("hola")))
}
