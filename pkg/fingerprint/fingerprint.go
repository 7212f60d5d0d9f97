// Package fingerprint computes composite content identities for files.
// Two independent digests (MD5 and SHA-256) plus the byte length are
// combined into one key so that a collision in either algorithm cannot
// silently merge distinct content.
package fingerprint

import (
	"context"
	"crypto/md5"
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"github.com/sdejongh/desktidy/pkg/models"
	"github.com/sdejongh/desktidy/pkg/storage"
)

// ProgressFunc receives the number of bytes consumed since the last call
type ProgressFunc func(path string, n int64)

// Fingerprinter computes content identities with a single streaming
// pass per file. Files are never loaded into memory whole: multi
// gigabyte media files are hashed through fixed-size pooled buffers.
type Fingerprinter struct {
	bufferSize int
	bufferPool *sync.Pool
	progress   ProgressFunc
}

// New creates a fingerprinter with the given read buffer size
func New(bufferSize int) *Fingerprinter {
	if bufferSize < 4096 {
		bufferSize = 4096
	}
	return &Fingerprinter{
		bufferSize: bufferSize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buf := make([]byte, bufferSize)
				return &buf
			},
		},
	}
}

// SetProgressCallback sets the progress reporting callback
func (f *Fingerprinter) SetProgressCallback(callback ProgressFunc) {
	f.progress = callback
}

// Fingerprint reads the file once, updating both digests incrementally,
// and returns its content identity. Fails if the file cannot be opened
// or read mid-stream.
func (f *Fingerprinter) Fingerprint(ctx context.Context, backend storage.Backend, path string) (models.ContentIdentity, error) {
	reader, err := backend.Read(ctx, path)
	if err != nil {
		return models.ContentIdentity{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	md5Hash := md5.New()
	shaHash := sha256.New()

	bufPtr := f.bufferPool.Get().(*[]byte)
	defer f.bufferPool.Put(bufPtr)
	buf := *bufPtr

	var size int64
	for {
		select {
		case <-ctx.Done():
			return models.ContentIdentity{}, ctx.Err()
		default:
		}

		n, err := reader.Read(buf)
		if n > 0 {
			md5Hash.Write(buf[:n])
			shaHash.Write(buf[:n])
			size += int64(n)

			if f.progress != nil {
				f.progress(path, int64(n))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.ContentIdentity{}, fmt.Errorf("failed to read file: %w", err)
		}
	}

	return models.ContentIdentity{
		Size:   size,
		MD5:    fmt.Sprintf("%x", md5Hash.Sum(nil)),
		SHA256: fmt.Sprintf("%x", shaHash.Sum(nil)),
	}, nil
}
