// Package category maps file extensions to organization categories.
// The mapping is a closed static table; configuration may add
// extensions but never reassign built-in ones.
package category

import (
	"strings"

	"github.com/sdejongh/desktidy/pkg/models"
)

// Table maps lowercase extensions (without leading dot) to categories
type Table map[string]models.Category

// Default returns the built-in extension table
func Default() Table {
	t := Table{}

	add := func(c models.Category, exts ...string) {
		for _, ext := range exts {
			t[ext] = c
		}
	}

	add(models.CategoryPresentations, "ppt", "pptx")
	add(models.CategoryDocuments, "doc", "docx")
	add(models.CategorySpreadsheets, "xls", "xlsx")
	add(models.CategoryPDFs, "pdf")
	add(models.CategoryImages,
		"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp", "heic",
		"raw", "cr2", "nef", "arw")
	add(models.CategoryVideos,
		"mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "m4v", "3gp")
	add(models.CategoryAudio,
		"mp3", "wav", "aac", "ogg", "flac", "m4a", "wma", "aiff")

	return t
}

// Lookup resolves an extension to its category, case-insensitive.
// The extension may carry a leading dot. Returns false for
// unrecognized extensions: such files are counted but never organized.
func (t Table) Lookup(ext string) (models.Category, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return "", false
	}
	c, ok := t[ext]
	return c, ok
}

// Extend adds configured extension mappings to the table.
// Built-in extensions cannot be reassigned; unknown category names
// are rejected.
func (t Table) Extend(overrides map[string]string) error {
	for ext, name := range overrides {
		ext = strings.ToLower(strings.TrimPrefix(ext, "."))
		if ext == "" {
			return &models.ValidationError{Field: "categories", Message: "empty extension"}
		}

		c, ok := models.ParseCategory(name)
		if !ok {
			return &models.ValidationError{Field: "categories." + ext, Message: "unknown category: " + name}
		}

		if existing, ok := t[ext]; ok && existing != c {
			return &models.ValidationError{Field: "categories." + ext, Message: "extension is built-in and cannot be reassigned"}
		}

		t[ext] = c
	}
	return nil
}
