package images

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyImage   = errors.New("image is empty")
	ErrInvalidImage = errors.New("invalid image payload")
)

// allowedMimeTypes defines which image types are accepted
var allowedMimeTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store сохраняет декодированные base64-картинки на диск и возвращает
// публичный URL, который хранится в поле image рецепта.
type Store struct {
	baseDir    string // absolute path to media dir
	staticBase string // URL prefix for serving files
}

func NewStore(baseDir, staticBase string) *Store {
	if baseDir == "" {
		baseDir = "./media"
	}
	if staticBase == "" {
		staticBase = "/media"
	}
	return &Store{baseDir: baseDir, staticBase: staticBase}
}

// SaveBase64 принимает data URL вида "data:image/png;base64,...."
// и пишет файл в media/recipes/ под uuid-именем.
func (s *Store) SaveBase64(data string) (string, error) {
	if strings.TrimSpace(data) == "" {
		return "", ErrEmptyImage
	}

	mimeType, payload, ok := splitDataURL(data)
	if !ok {
		return "", ErrInvalidImage
	}

	ext, allowed := allowedMimeTypes[mimeType]
	if !allowed {
		return "", ErrInvalidImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrInvalidImage
	}
	if len(raw) == 0 {
		return "", ErrEmptyImage
	}

	relDir := "recipes"
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}

	filename := uuid.New().String() + ext
	absPath := filepath.Join(absDir, filename)
	if err := os.WriteFile(absPath, raw, 0644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return s.staticBase + "/" + relDir + "/" + filename, nil
}

// splitDataURL разбирает "data:<mime>;base64,<payload>".
func splitDataURL(data string) (mimeType, payload string, ok bool) {
	if !strings.HasPrefix(data, "data:") {
		return "", "", false
	}
	rest := strings.TrimPrefix(data, "data:")

	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", "", false
	}

	return rest[:sep], rest[sep+len(";base64,"):], true
}
