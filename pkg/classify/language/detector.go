// Package language provides optional programming-language detection for
// scan results, layered on go-enry. Detection output is informational
// metadata and never feeds back into tag classification.
package language

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Detector identifies the programming language of a file from its
// content and path.
type Detector interface {
	// Detect returns a lowercase language identifier (for example "go",
	// "python", "plaintext") and a confidence score in [0, 1]. Detection
	// failures fall back to "plaintext" or "unknown" rather than
	// returning an error.
	Detect(content []byte, path string) (language string, confidence float64, err error)
}

type enryDetector struct {
	// overrides maps a lowercase extension (with leading dot) to a
	// language identifier, taking precedence over enry.
	overrides map[string]string
}

// NewEnryDetector builds the default go-enry backed detector. Override
// keys are normalized to lowercase dotted extensions; blank entries are
// dropped.
func NewEnryDetector(overrides map[string]string) Detector {
	norm := make(map[string]string, len(overrides))
	for ext, lang := range overrides {
		ext = strings.ToLower(strings.TrimSpace(ext))
		lang = strings.ToLower(strings.TrimSpace(lang))
		if ext == "" || ext == "." || lang == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		norm[ext] = lang
	}
	return &enryDetector{overrides: norm}
}

func (d *enryDetector) Detect(content []byte, path string) (string, float64, error) {
	if len(content) == 0 {
		return "unknown", 0.0, nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := d.overrides[ext]; ok {
		return lang, 1.0, nil
	}

	name := filepath.Base(path)
	if lang := enry.GetLanguage(name, content); lang != "" && lang != "Text" {
		return strings.ToLower(lang), 0.8, nil
	}
	if lang, safe := enry.GetLanguageByExtension(path); safe && lang != "" && lang != "Text" {
		return strings.ToLower(lang), 0.5, nil
	}
	if lang, safe := enry.GetLanguageByFilename(path); safe && lang != "" && lang != "Text" {
		return strings.ToLower(lang), 0.5, nil
	}
	return "plaintext", 0.0, nil
}
