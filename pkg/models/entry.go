package models

import (
	"fmt"
)

// FileEntry represents a file eligible for organization
// Entries are value objects: copied freely, never shared mutable state
type FileEntry struct {
	// Name is the base filename
	Name string

	// RelativePath is the path relative to the target directory root
	RelativePath string

	// AbsolutePath is the full path on the filesystem
	AbsolutePath string

	// Size in bytes at scan time
	Size int64

	// Category is assigned once by the scanner and is immutable
	Category Category
}

// ContentIdentity is the composite content fingerprint of a file:
// byte length plus two independent digests. Files are only treated as
// identical when length and both digests match and a final byte
// comparison succeeds.
type ContentIdentity struct {
	// Size is the number of bytes hashed
	Size int64

	// MD5 is the hex-encoded MD5 digest (fast, legacy)
	MD5 string

	// SHA256 is the hex-encoded SHA-256 digest (cryptographic)
	SHA256 string
}

// Key returns the bucket key combining length and both digests
func (id ContentIdentity) Key() string {
	return fmt.Sprintf("%d_%s_%s", id.Size, id.MD5, id.SHA256)
}

// DuplicateGroup holds files verified to share identical content.
// Files are ordered canonical-first: the member with the earliest
// creation timestamp survives in its category folder, the rest are
// relocated to the duplicates folder.
type DuplicateGroup struct {
	// Key is the content identity key shared by all members
	Key string

	// Files are the verified members, canonical first, size >= 2
	Files []FileEntry
}

// Canonical returns the surviving member of the group
func (g *DuplicateGroup) Canonical() FileEntry {
	return g.Files[0]
}

// Redundant returns every non-canonical member of the group
func (g *DuplicateGroup) Redundant() []FileEntry {
	return g.Files[1:]
}

// ValidationError represents a configuration or flag validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
