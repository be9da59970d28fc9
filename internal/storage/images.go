// Package storage persists uploaded images on local disk. Payloads arrive as
// data-URI base64 strings; files are stored under a per-kind subdirectory with
// uuid names and served back by URL path.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/d60-Lab/foodgram-backend/internal/apperr"
)

type ImageStore struct {
	root    string
	baseURL string
}

func NewImageStore(root, baseURL string) *ImageStore {
	return &ImageStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

var extByMime = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Save decodes a "data:image/...;base64,..." payload into kind's
// subdirectory and returns the public URL path.
func (s *ImageStore) Save(kind, dataURI string) (string, error) {
	mime, data, err := decodeDataURI(dataURI)
	if err != nil {
		return "", err
	}
	ext, ok := extByMime[mime]
	if !ok {
		return "", apperr.Newf(apperr.KindInvalidField, "unsupported image type %q", mime)
	}

	dir := filepath.Join(s.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}
	name := uuid.New().String() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return path.Join(s.baseURL, kind, name), nil
}

func decodeDataURI(dataURI string) (mime string, data []byte, err error) {
	const marker = ";base64,"
	if !strings.HasPrefix(dataURI, "data:") {
		return "", nil, apperr.New(apperr.KindInvalidField, "image must be a base64 data URI")
	}
	idx := strings.Index(dataURI, marker)
	if idx < 0 {
		return "", nil, apperr.New(apperr.KindInvalidField, "image must be base64 encoded")
	}
	mime = dataURI[len("data:"):idx]
	data, err = base64.StdEncoding.DecodeString(dataURI[idx+len(marker):])
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindInvalidField, "invalid base64 image payload", err)
	}
	return mime, data, nil
}
