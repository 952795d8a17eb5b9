package tuteliq

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMimeTypeForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"report.mp3", "audio/mpeg"},
		{"clip.WAV", "audio/wav"},
		{"voice.m4a", "audio/mp4"},
		{"photo.jpg", "image/jpeg"},
		{"photo.jpeg", "image/jpeg"},
		{"screen.png", "image/png"},
		{"anim.gif", "image/gif"},
		{"notes.txt", "text/plain"},
		{"unknown.xyz", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mimeTypeForFile(tt.filename), tt.filename)
	}
}

func TestBuildMultipartBody(t *testing.T) {
	boundary := newBoundary()
	body, err := buildMultipartBody(boundary,
		formFile{field: "file", filename: "report.mp3", data: []byte("audio-bytes")},
		[]formField{
			{name: "child_age", value: 12},
			{name: "language", value: "en"},
		},
	)
	require.NoError(t, err)

	raw := string(body)
	assert.True(t, strings.HasSuffix(strings.TrimRight(raw, "\r\n"), "--"+boundary+"--"),
		"body ends with the closing boundary marker")

	reader := multipart.NewReader(bytes.NewReader(body), boundary)

	// File part comes first with the inferred content type.
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "file", part.FormName())
	assert.Equal(t, "report.mp3", part.FileName())
	assert.Equal(t, "audio/mpeg", part.Header.Get("Content-Type"))
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, []byte("audio-bytes"), data)

	// Fields follow in insertion order, ints rendered as plain text.
	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "child_age", part.FormName())
	data, _ = io.ReadAll(part)
	assert.Equal(t, "12", string(data))

	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "language", part.FormName())
	data, _ = io.ReadAll(part)
	assert.Equal(t, "en", string(data))

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestBuildMultipartBodyNoFields(t *testing.T) {
	boundary := newBoundary()
	body, err := buildMultipartBody(boundary,
		formFile{field: "file", filename: "shot.png", data: []byte{0x89, 0x50}},
		nil,
	)
	require.NoError(t, err)

	reader := multipart.NewReader(bytes.NewReader(body), boundary)
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "image/png", part.Header.Get("Content-Type"))

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestFieldText(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string passes through", "hello", "hello"},
		{"int", 7, "7"},
		{"int64", int64(42), "42"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"float", 0.5, "0.5"},
		{"map serialized as JSON", map[string]string{"k": "v"}, `{"k":"v"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fieldText(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewBoundaryUnique(t *testing.T) {
	assert.NotEqual(t, newBoundary(), newBoundary())
}
