package fsx

import (
	"context"
	"io"
)

// FileReader reads files from a storage backend
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)
}

// FileWriter writes files to a storage backend
type FileWriter interface {
	WriteFile(ctx context.Context, path string, data []byte) error
	WriteFileStream(ctx context.Context, path string, r io.Reader) error
	DeleteFile(ctx context.Context, path string) error
}

// FileSystem combines reading and writing with path construction
type FileSystem interface {
	FileReader
	FileWriter
	Join(parts ...string) string
	Exists(ctx context.Context, path string) (bool, error)
}
