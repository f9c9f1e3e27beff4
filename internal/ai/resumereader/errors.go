package resumereader

import "errors"

var (
	ErrEmptyFile         = errors.New("resume file is empty")
	ErrUnsupportedFormat = errors.New("unsupported resume format")
	ErrOCRUnavailable    = errors.New("scanned resume needs OCR but no transcriber is configured")
)
