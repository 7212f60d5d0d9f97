package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local is a filesystem backend rooted at the target directory
type Local struct {
	rootPath string
}

// NewLocal creates a local backend for the given directory
func NewLocal(rootPath string) (*Local, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", absPath)
	}

	return &Local{rootPath: absPath}, nil
}

// List returns the immediate entries of dir in lexical name order
func (l *Local) List(ctx context.Context, dir string) ([]FileInfo, error) {
	fullPath := filepath.Join(l.rootPath, dir)

	dirEntries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	entries := make([]FileInfo, 0, len(dirEntries))
	for _, de := range dirEntries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		info, err := de.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", de.Name(), err)
		}

		entries = append(entries, l.fileInfo(filepath.Join(dir, de.Name()), info))
	}

	return entries, nil
}

// Read opens a file for reading
func (l *Local) Read(ctx context.Context, path string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(l.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// Stat returns file metadata
func (l *Local) Stat(ctx context.Context, path string) (*FileInfo, error) {
	info, err := os.Stat(filepath.Join(l.rootPath, path))
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	fi := l.fileInfo(path, info)
	return &fi, nil
}

// Exists checks if a file or directory exists
func (l *Local) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.rootPath, path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check existence: %w", err)
}

// Rename atomically moves oldPath to newPath within the root
func (l *Local) Rename(ctx context.Context, oldPath, newPath string) error {
	src := filepath.Join(l.rootPath, oldPath)
	dest := filepath.Join(l.rootPath, newPath)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	if err := os.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}

	return nil
}

// MkdirAll creates a directory and all necessary parents
func (l *Local) MkdirAll(ctx context.Context, path string) error {
	if err := os.MkdirAll(filepath.Join(l.rootPath, path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Root returns the absolute root path
func (l *Local) Root() string {
	return l.rootPath
}

// Close releases resources (none for local filesystems)
func (l *Local) Close() error {
	return nil
}

// fileInfo converts an os.FileInfo into a backend FileInfo
func (l *Local) fileInfo(relPath string, info os.FileInfo) FileInfo {
	created, known := creationTime(info.Sys())
	return FileInfo{
		Name:           info.Name(),
		RelativePath:   relPath,
		AbsolutePath:   filepath.Join(l.rootPath, relPath),
		Size:           info.Size(),
		ModTime:        info.ModTime(),
		IsDir:          info.IsDir(),
		CreatedAt:      created,
		CreatedAtKnown: known,
	}
}
