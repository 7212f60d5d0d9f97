// Package scan lists the top-level entries of a target directory and
// assigns categories. Subdirectories and their contents are never
// scanned; the duplicates folder is always excluded so repeated runs
// do not re-ingest previously segregated files.
package scan

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sdejongh/desktidy/pkg/category"
	"github.com/sdejongh/desktidy/pkg/logging"
	"github.com/sdejongh/desktidy/pkg/models"
	"github.com/sdejongh/desktidy/pkg/storage"
)

// Scanner produces the file entries eligible for organization
type Scanner struct {
	backend          storage.Backend
	table            category.Table
	duplicatesFolder string
	logger           logging.Logger
}

// NewScanner creates a scanner over the backend's root directory
func NewScanner(backend storage.Backend, table category.Table, duplicatesFolder string, logger logging.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNullLogger()
	}
	return &Scanner{
		backend:          backend,
		table:            table,
		duplicatesFolder: duplicatesFolder,
		logger:           logger,
	}
}

// Scan lists the root directory once. A listing failure is fatal to
// the run: nothing has been touched yet, so it is safe to surface
// directly. Files with unrecognized extensions are counted but not
// returned as entries.
func (s *Scanner) Scan(ctx context.Context) (*models.ScanResult, error) {
	infos, err := s.backend.List(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	result := &models.ScanResult{
		ByCategory: make(map[models.Category][]models.FileEntry),
	}

	for _, info := range infos {
		if info.IsDir || info.Name == s.duplicatesFolder {
			s.logger.Debug(ctx, "skipping folder", logging.Fields{"path": info.RelativePath})
			continue
		}

		result.TotalFiles++

		cat, ok := s.table.Lookup(filepath.Ext(info.Name))
		if !ok {
			continue
		}

		result.SupportedFiles++
		result.SupportedBytes += info.Size

		entry := models.FileEntry{
			Name:         info.Name,
			RelativePath: info.RelativePath,
			AbsolutePath: info.AbsolutePath,
			Size:         info.Size,
			Category:     cat,
		}

		s.logger.Debug(ctx, "found supported file", logging.Fields{
			"name":     entry.Name,
			"category": cat.String(),
		})

		result.Entries = append(result.Entries, entry)
		result.ByCategory[cat] = append(result.ByCategory[cat], entry)
	}

	s.logger.Info(ctx, "scan complete", logging.Fields{
		"total":     result.TotalFiles,
		"supported": result.SupportedFiles,
	})

	return result, nil
}
