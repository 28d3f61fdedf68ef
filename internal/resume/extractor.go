// Package resume turns stored résumé documents into plain text.
package resume

import (
	"fmt"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
)

// SupportedExt reports whether the extension is a format we can extract
// text from.
func SupportedExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt":
		return true
	}
	return false
}

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the full text of the document at path. An empty result
// is not an error here; the ingestion pipeline decides what to do with it.
func (e *Extractor) ExtractText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !SupportedExt(ext) {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse document: %w", err)
	}
	return res.Body, nil
}
