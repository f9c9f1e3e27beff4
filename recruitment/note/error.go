package note

import (
	"net/http"

	"github.com/Abraxas-365/hiresight/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("NOTE")

var (
	CodeNoteNotFound   = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Note not found")
	CodeEmptyContent   = ErrRegistry.Register("EMPTY_CONTENT", errx.TypeValidation, http.StatusBadRequest, "Note content is required")
	CodeInvalidType    = ErrRegistry.Register("INVALID_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid note type")
	CodeNotAuthor      = ErrRegistry.Register("NOT_AUTHOR", errx.TypeAuthorization, http.StatusForbidden, "Only the author or an admin can change this note")
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

func ErrNoteNotFound() *errx.Error {
	return ErrRegistry.New(CodeNoteNotFound)
}

func ErrEmptyContent() *errx.Error {
	return ErrRegistry.New(CodeEmptyContent)
}

func ErrInvalidType() *errx.Error {
	return ErrRegistry.New(CodeInvalidType)
}

func ErrNotAuthor() *errx.Error {
	return ErrRegistry.New(CodeNotAuthor)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
