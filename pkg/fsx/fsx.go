// Package fsx abstracts the object storage that holds uploaded files.
package fsx

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by readers when the path does not exist
var ErrNotFound = errors.New("fsx: file not found")

type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
}

type FileSystem interface {
	FileReader
	FileWriter
	DeleteFile(ctx context.Context, path string) error
	Join(elem ...string) string
}
