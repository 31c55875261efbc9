package app

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// fileStem is the file name without extension for a request.
func fileStem(req Request) string {
	return strings.Join([]string{safeName(req.Type), safeName(req.ID), safeName(req.SizeCode)}, "-")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "none"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

// extensionFor sniffs the payload first and falls back to the declared type.
func extensionFor(contentType string, body []byte) string {
	if ext := mimetype.Detect(body).Extension(); ext != "" {
		return ext
	}
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			return exts[0]
		}
	}
	return ".bin"
}

// saveFile writes body atomically into dir and returns the final path.
func saveFile(dir, stem, contentType string, body []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	final := filepath.Join(dir, stem+extensionFor(contentType, body))
	tmp, err := os.CreateTemp(dir, "."+stem+"-*.part")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write %s: %w", final, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", final, err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return "", fmt.Errorf("move %s into place: %w", final, err)
	}
	return final, nil
}
