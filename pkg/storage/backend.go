package storage

import (
	"context"
	"io"
	"time"
)

// FileInfo represents metadata about a top-level entry
type FileInfo struct {
	// Name is the base name of the entry
	Name string

	// RelativePath is the path relative to the backend root
	RelativePath string

	// AbsolutePath is the full path on the filesystem
	AbsolutePath string

	// Size in bytes
	Size int64

	// ModTime is the last modification time
	ModTime time.Time

	// IsDir indicates if this entry is a directory
	IsDir bool

	// CreatedAt is the filesystem creation (birth) time
	CreatedAt time.Time

	// CreatedAtKnown is false when the platform does not expose a
	// creation time; such entries sort after dated ones
	CreatedAtKnown bool
}

// Backend defines the filesystem operations the organizer needs,
// rooted at the target directory. All paths are relative to that root.
type Backend interface {
	// List returns the immediate entries of dir, non-recursive,
	// in lexical name order
	List(ctx context.Context, dir string) ([]FileInfo, error)

	// Read opens a file for reading
	Read(ctx context.Context, path string) (io.ReadCloser, error)

	// Stat returns file metadata
	Stat(ctx context.Context, path string) (*FileInfo, error)

	// Exists checks if a file or directory exists
	Exists(ctx context.Context, path string) (bool, error)

	// Rename atomically moves oldPath to newPath, creating newPath's
	// parent directories as needed. Atomic within one volume; a
	// cross-device rename fails and the source is left untouched.
	Rename(ctx context.Context, oldPath, newPath string) error

	// MkdirAll creates a directory and all necessary parents
	MkdirAll(ctx context.Context, path string) error

	// Root returns the absolute root path of the backend
	Root() string

	// Close releases any resources held by the backend
	Close() error
}
