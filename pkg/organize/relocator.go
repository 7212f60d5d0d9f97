package organize

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sdejongh/desktidy/pkg/logging"
	"github.com/sdejongh/desktidy/pkg/models"
	"github.com/sdejongh/desktidy/pkg/storage"
)

// Relocator owns all filesystem mutation of an organize pass.
// Every move re-validates the source and recomputes its destination,
// so the pass stays correct as earlier moves change the directory.
type Relocator struct {
	backend          storage.Backend
	resolver         *Resolver
	duplicatesFolder string
	logger           logging.Logger
}

// NewRelocator creates a relocator over the backend's root directory
func NewRelocator(backend storage.Backend, resolver *Resolver, duplicatesFolder string, logger logging.Logger) *Relocator {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Relocator{
		backend:          backend,
		resolver:         resolver,
		duplicatesFolder: duplicatesFolder,
		logger:           logger,
	}
}

// CreateCategoryFolders creates one folder per category under the
// root. Idempotent: pre-existing folders are silently skipped and
// recorded as no action.
func (r *Relocator) CreateCategoryFolders(ctx context.Context, categories []models.Category) ([]models.Action, error) {
	var actions []models.Action

	for _, c := range categories {
		exists, err := r.backend.Exists(ctx, c.String())
		if err != nil {
			return actions, fmt.Errorf("failed to check category folder %s: %w", c, err)
		}
		if exists {
			continue
		}

		if err := r.backend.MkdirAll(ctx, c.String()); err != nil {
			return actions, fmt.Errorf("failed to create category folder %s: %w", c, err)
		}

		actions = append(actions, models.Action{Type: models.ActionCreateFolder, Category: c})
	}

	return actions, nil
}

// Organize moves canonical files into their category folders and
// redundant duplicate copies into the duplicates folder. In dry-run
// mode no filesystem mutation happens at all; intended actions are
// recorded instead.
//
// A failed move leaves its source untouched, records no action, and
// does not abort the pass: partial completion is an accepted,
// observable outcome surfaced through MoveFailures.
//
// Dry-run destinations are resolved against the directory as it
// exists now, without simulating the pass's own previewed moves, so
// two previews may display names that a real run would further
// disambiguate.
func (r *Relocator) Organize(ctx context.Context, entries []models.FileEntry, groups []models.DuplicateGroup, dryRun bool) (*models.OrganizeOutcome, error) {
	skip := make(map[string]struct{})
	for _, g := range groups {
		for _, e := range g.Redundant() {
			skip[e.RelativePath] = struct{}{}
		}
	}

	outcome := &models.OrganizeOutcome{Duplicates: groups}

	for _, entry := range entries {
		if _, skipped := skip[entry.RelativePath]; skipped {
			continue
		}

		folder := entry.Category.String()
		if filepath.Dir(entry.RelativePath) == folder {
			continue
		}

		dest := r.resolver.UniquePath(ctx, folder, entry.Name)

		if dryRun {
			outcome.Actions = append(outcome.Actions, models.Action{
				Type:        models.ActionMove,
				Name:        entry.Name,
				Category:    entry.Category,
				Destination: dest,
				DryRun:      true,
			})
			continue
		}

		if err := r.move(ctx, entry.RelativePath, dest); err != nil {
			r.logger.Warn(ctx, "move failed, leaving file in place", logging.Fields{
				"path":  entry.RelativePath,
				"error": err.Error(),
			})
			outcome.MoveFailures++
			continue
		}

		outcome.Actions = append(outcome.Actions, models.Action{
			Type:        models.ActionMove,
			Name:        entry.Name,
			Category:    entry.Category,
			Destination: dest,
		})
	}

	if len(groups) > 0 {
		if !dryRun {
			if err := r.backend.MkdirAll(ctx, r.duplicatesFolder); err != nil {
				return outcome, fmt.Errorf("failed to create duplicates folder: %w", err)
			}
		}

		for _, group := range groups {
			canonical := group.Canonical()
			for _, entry := range group.Redundant() {
				if filepath.Dir(entry.RelativePath) == r.duplicatesFolder {
					continue
				}

				dest := r.resolver.UniquePath(ctx, r.duplicatesFolder, entry.Name)

				if dryRun {
					outcome.Actions = append(outcome.Actions, models.Action{
						Type:        models.ActionMoveDuplicate,
						Name:        entry.Name,
						Destination: dest,
						Folder:      r.duplicatesFolder,
						DuplicateOf: canonical.Name,
						DryRun:      true,
					})
					continue
				}

				if err := r.move(ctx, entry.RelativePath, dest); err != nil {
					r.logger.Warn(ctx, "duplicate move failed, leaving file in place", logging.Fields{
						"path":  entry.RelativePath,
						"error": err.Error(),
					})
					outcome.MoveFailures++
					continue
				}

				outcome.Actions = append(outcome.Actions, models.Action{
					Type:        models.ActionMoveDuplicate,
					Name:        entry.Name,
					Destination: dest,
					Folder:      r.duplicatesFolder,
					DuplicateOf: canonical.Name,
				})
			}
		}
	}

	return outcome, nil
}

// move re-validates the source then performs an atomic rename.
// The source may have vanished between detection and relocation.
func (r *Relocator) move(ctx context.Context, src, dest string) error {
	exists, err := r.backend.Exists(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to check source: %w", err)
	}
	if !exists {
		return fmt.Errorf("source no longer exists: %s", src)
	}

	return r.backend.Rename(ctx, src, dest)
}
