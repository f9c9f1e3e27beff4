// Package resumereader turns an uploaded resume file into plain text. PDFs
// are read from their text layer; scans and images fall back to OCR when a
// transcriber is configured.
package resumereader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Abraxas-365/hiresight/internal/pdf"
	"github.com/Abraxas-365/hiresight/pkg/logx"
)

const (
	// a text layer shorter than this is treated as a scan
	minTextChars  = 40
	defaultMaxOCR = 4
)

// Transcriber reads text out of page images
type Transcriber interface {
	Transcribe(ctx context.Context, pages [][]byte) (string, error)
}

type Reader struct {
	ocr      Transcriber
	maxPages int
}

// New returns a reader; ocr may be nil to disable the OCR fallback
func New(ocr Transcriber) *Reader {
	return &Reader{ocr: ocr, maxPages: defaultMaxOCR}
}

// ExtractText returns the plain text of a resume file
func (r *Reader) ExtractText(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyFile
	}

	switch {
	case pdf.IsPDF(data):
		return r.fromPDF(ctx, data)
	case isPlainText(fileName, data):
		return strings.TrimSpace(string(data)), nil
	}

	if _, err := pdf.DetectImageFormat(data); err == nil {
		if r.ocr == nil {
			return "", ErrOCRUnavailable
		}
		jpg, err := pdf.ConvertImageToJPEG(data)
		if err != nil {
			return "", err
		}
		return r.ocr.Transcribe(ctx, [][]byte{jpg})
	}

	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(fileName))
}

func (r *Reader) fromPDF(ctx context.Context, data []byte) (string, error) {
	text, err := pdf.ExtractText(data)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(text)) >= minTextChars || r.ocr == nil {
		return text, nil
	}

	logx.Debugf("pdf text layer has %d chars, falling back to OCR", len(text))
	pages, err := pdf.RenderPages(data, r.maxPages)
	if err != nil {
		return "", err
	}
	ocrText, err := r.ocr.Transcribe(ctx, pages)
	if err != nil {
		if text != "" {
			logx.Warnf("OCR failed, keeping partial text layer: %v", err)
			return text, nil
		}
		return "", err
	}
	return ocrText, nil
}

func isPlainText(fileName string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt", ".md", ".text":
		return utf8.Valid(data)
	}
	return false
}
