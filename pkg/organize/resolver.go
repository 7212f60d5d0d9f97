// Package organize relocates files into their category folders and
// segregates redundant duplicate copies, resolving collision-free
// destinations for every move.
package organize

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/sdejongh/desktidy/pkg/storage"
)

// trailingCounter matches disambiguation suffixes like "_1" or "_12"
// appended to a filename stem by external tools
var trailingCounter = regexp.MustCompile(`_\d+$`)

// Resolver produces collision-free destination paths. For a fixed
// directory snapshot the result is a pure function of (dir, name);
// existence is re-checked on every candidate because moves earlier in
// the same pass change the directory contents.
type Resolver struct {
	backend storage.Backend
}

// NewResolver creates a resolver probing through the backend
func NewResolver(backend storage.Backend) *Resolver {
	return &Resolver{backend: backend}
}

// CleanName strips a trailing "_N" disambiguation suffix from the
// stem, so repeated runs converge to clean names. Names without an
// extension are left unchanged.
func CleanName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return name
	}

	stem := strings.TrimSuffix(name, ext)
	if !trailingCounter.MatchString(stem) {
		return name
	}

	return trailingCounter.ReplaceAllString(stem, "") + ext
}

// UniquePath returns an unused destination path for name inside dir.
// The name is cleaned first; on collision " (N)" is appended before
// the extension, incrementing N until an unused path is found.
// Never fails: if an existence check errors, the current candidate is
// returned unchanged.
func (r *Resolver) UniquePath(ctx context.Context, dir, name string) string {
	name = CleanName(name)

	candidate := filepath.Join(dir, name)
	exists, err := r.backend.Exists(ctx, candidate)
	if err != nil || !exists {
		return candidate
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; ; n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		exists, err := r.backend.Exists(ctx, candidate)
		if err != nil || !exists {
			return candidate
		}
	}
}
