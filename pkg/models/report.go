package models

import (
	"time"
)

// ScanResult holds the outcome of a directory scan
type ScanResult struct {
	// TotalFiles is the number of top-level files seen
	TotalFiles int

	// SupportedFiles is the number of files with a recognized extension
	SupportedFiles int

	// SupportedBytes is the combined size of supported files
	SupportedBytes int64

	// Entries are the supported files in discovery order
	Entries []FileEntry

	// ByCategory buckets entries by their assigned category
	ByCategory map[Category][]FileEntry
}

// OrganizeOutcome holds the results of a relocation pass
type OrganizeOutcome struct {
	// Actions is the append-only log of relocations performed or previewed
	Actions []Action

	// Duplicates are the duplicate groups consumed by this pass
	Duplicates []DuplicateGroup

	// MoveFailures counts files left in place because their move failed
	MoveFailures int
}

// OrganizeStatus represents the overall result of a run
type OrganizeStatus string

const (
	// StatusSuccess indicates every attempted move succeeded
	StatusSuccess OrganizeStatus = "success"
	// StatusPartial indicates some moves failed and their files were left in place
	StatusPartial OrganizeStatus = "partial"
	// StatusFailed indicates the run aborted before organizing
	StatusFailed OrganizeStatus = "failed"
)

// ExitCode returns the process exit code for the status
func (s OrganizeStatus) ExitCode() int {
	switch s {
	case StatusSuccess:
		return 0
	case StatusPartial:
		return 1
	case StatusFailed:
		return 2
	default:
		return 2
	}
}

// OrganizeReport is the full record of one organize run
type OrganizeReport struct {
	// RunID uniquely identifies this run
	RunID string

	// Root is the target directory that was organized
	Root string

	// DryRun indicates the run previewed actions without mutating anything
	DryRun bool

	// Timing
	StartedAt time.Time
	Duration  time.Duration

	// Scan is the directory scan result
	Scan *ScanResult

	// Outcome is the relocation outcome
	Outcome *OrganizeOutcome

	// Status is the overall result
	Status OrganizeStatus
}
