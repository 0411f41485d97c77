// Package fsx abstracts blob storage behind small read/write ports.
package fsx

import "context"

type FileReader interface {
	// ReadFile returns the full contents of the object at path.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

type FileWriter interface {
	// WriteFile stores data at path and returns a URL the client can fetch.
	WriteFile(ctx context.Context, path string, data []byte, contentType string) (string, error)

	// DeleteFile removes the object at path. Deleting a missing object is not
	// an error.
	DeleteFile(ctx context.Context, path string) error
}

type FileSystem interface {
	FileReader
	FileWriter
}
