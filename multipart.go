package tuteliq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"path"
	"strings"
)

// mimeTypes is the static extension lookup used for uploaded files. Unknown
// extensions fall back to application/octet-stream.
var mimeTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
	".heic": "image/heic",
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".txt":  "text/plain",
	".json": "application/json",
}

func mimeTypeForFile(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}

// formFile is the file part of a multipart upload.
type formFile struct {
	field    string
	filename string
	data     []byte
}

// formField is one scalar or structured form field. Structured values
// (anything that isn't already a string) are JSON-serialized to text.
type formField struct {
	name  string
	value any
}

// newBoundary returns a fresh random multipart boundary token.
func newBoundary() string {
	return multipart.NewWriter(io.Discard).Boundary()
}

// buildMultipartBody serializes a file upload plus form fields into a
// multipart/form-data byte sequence using the given boundary. Parts are
// emitted in insertion order: the file first, then each field, then the
// closing boundary marker. The builder knows nothing about HTTP.
func buildMultipartBody(boundary string, file formFile, fields []formField) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary(boundary); err != nil {
		return nil, fmt.Errorf("set multipart boundary: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.field, file.filename))
	header.Set("Content-Type", mimeTypeForFile(file.filename))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(file.data); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}

	for _, field := range fields {
		text, err := fieldText(field.value)
		if err != nil {
			return nil, fmt.Errorf("encode field %q: %w", field.name, err)
		}
		if err := w.WriteField(field.name, text); err != nil {
			return nil, fmt.Errorf("write field %q: %w", field.name, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}
	return buf.Bytes(), nil
}

func fieldText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case bool:
		if t {
			return "true", nil
		}
		return "false", nil
	case int:
		return fmt.Sprintf("%d", t), nil
	case int64:
		return fmt.Sprintf("%d", t), nil
	case float64:
		data, err := json.Marshal(t)
		return string(data), err
	default:
		data, err := json.Marshal(t)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}
