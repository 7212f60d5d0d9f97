package models

import (
	"fmt"
)

// ActionType identifies the kind of relocation decision taken
type ActionType string

const (
	// ActionCreateFolder records the creation of a category folder
	ActionCreateFolder ActionType = "create_folder"
	// ActionMove records a file moved into its category folder
	ActionMove ActionType = "move"
	// ActionMoveDuplicate records a redundant copy moved to the duplicates folder
	ActionMoveDuplicate ActionType = "move_duplicate"
)

// Action is one relocation decision, recorded after the move succeeded
// (real run) or as a preview (dry run). The action log is append-only
// and consumed by reporting only: no action entry implies no
// filesystem change occurred.
type Action struct {
	Type ActionType

	// Name is the base name of the file acted on
	Name string

	// Category is the destination category for move actions,
	// or the folder created for create_folder actions
	Category Category

	// Destination is the resolved relative destination path
	Destination string

	// Folder is the destination folder name for duplicate moves
	Folder string

	// DuplicateOf is the canonical file's base name for duplicate moves
	DuplicateOf string

	// DryRun marks a previewed action that performed no mutation
	DryRun bool
}

// Describe renders the human-readable action line
func (a Action) Describe() string {
	switch a.Type {
	case ActionCreateFolder:
		return fmt.Sprintf("Created category folder: %s", a.Category)
	case ActionMove:
		if a.DryRun {
			return fmt.Sprintf("Would move %s to %s folder", a.Name, a.Category)
		}
		return fmt.Sprintf("Moved %s to %s folder", a.Name, a.Category)
	case ActionMoveDuplicate:
		if a.DryRun {
			return fmt.Sprintf("Would move duplicate %s to %s folder (identical to %s)", a.Name, a.Folder, a.DuplicateOf)
		}
		return fmt.Sprintf("Moved duplicate %s to %s folder (identical to %s)", a.Name, a.Folder, a.DuplicateOf)
	default:
		return fmt.Sprintf("Unknown action on %s", a.Name)
	}
}
