package api

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxImageBytes is the largest image accepted for OCR submission.
// Anything larger should be recompressed before capture.
const MaxImageBytes = 5 << 20

var imageMIMETypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
	".bmp":  "image/bmp",
}

// EncodeImageFile reads an image from disk and encodes it as a data URL
// for OCR submission. Oversized or unrecognized files are rejected.
func EncodeImageFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := imageMIMETypes[ext]
	if !ok {
		return "", fmt.Errorf("unsupported image type %q", ext)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat image: %w", err)
	}
	if info.Size() > MaxImageBytes {
		return "", fmt.Errorf("image is %d bytes, limit is %d", info.Size(), MaxImageBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image: %w", err)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
