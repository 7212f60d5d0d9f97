package category

import (
	"testing"

	"github.com/sdejongh/desktidy/pkg/models"
)

func TestLookup(t *testing.T) {
	table := Default()

	tests := []struct {
		ext  string
		want models.Category
	}{
		{"pdf", models.CategoryPDFs},
		{"doc", models.CategoryDocuments},
		{"docx", models.CategoryDocuments},
		{"ppt", models.CategoryPresentations},
		{"pptx", models.CategoryPresentations},
		{"xls", models.CategorySpreadsheets},
		{"xlsx", models.CategorySpreadsheets},
		{"mp4", models.CategoryVideos},
		{"mp3", models.CategoryAudio},
		{"jpg", models.CategoryImages},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			got, ok := table.Lookup(tt.ext)
			if !ok {
				t.Fatalf("Lookup(%s) not found", tt.ext)
			}
			if got != tt.want {
				t.Errorf("Lookup(%s) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	table := Default()

	for _, ext := range []string{"PDF", "DocX", "MP4"} {
		if _, ok := table.Lookup(ext); !ok {
			t.Errorf("Lookup(%s) should be case-insensitive", ext)
		}
	}
}

func TestLookupLeadingDot(t *testing.T) {
	table := Default()

	got, ok := table.Lookup(".pdf")
	if !ok {
		t.Fatal("Lookup(.pdf) not found")
	}
	if got != models.CategoryPDFs {
		t.Errorf("Lookup(.pdf) = %v, want PDFs", got)
	}
}

func TestLookupUnknown(t *testing.T) {
	table := Default()

	if _, ok := table.Lookup("xyz"); ok {
		t.Error("Lookup(xyz) should not resolve")
	}
	if _, ok := table.Lookup(""); ok {
		t.Error("Lookup of empty extension should not resolve")
	}
}

func TestAllImageExtensions(t *testing.T) {
	table := Default()

	for _, ext := range []string{"jpg", "jpeg", "png", "gif", "bmp", "tiff", "webp", "heic", "raw", "cr2", "nef", "arw"} {
		got, ok := table.Lookup(ext)
		if !ok || got != models.CategoryImages {
			t.Errorf("Lookup(%s) = %v, %t; want Images", ext, got, ok)
		}
	}
}

func TestAllVideoExtensions(t *testing.T) {
	table := Default()

	for _, ext := range []string{"mp4", "mov", "avi", "mkv", "wmv", "flv", "webm", "m4v", "3gp"} {
		got, ok := table.Lookup(ext)
		if !ok || got != models.CategoryVideos {
			t.Errorf("Lookup(%s) = %v, %t; want Videos", ext, got, ok)
		}
	}
}

func TestAllAudioExtensions(t *testing.T) {
	table := Default()

	for _, ext := range []string{"mp3", "wav", "aac", "ogg", "flac", "m4a", "wma", "aiff"} {
		got, ok := table.Lookup(ext)
		if !ok || got != models.CategoryAudio {
			t.Errorf("Lookup(%s) = %v, %t; want Audio", ext, got, ok)
		}
	}
}

func TestExtend(t *testing.T) {
	t.Run("AddsNewExtension", func(t *testing.T) {
		table := Default()
		if err := table.Extend(map[string]string{"md": "Documents"}); err != nil {
			t.Fatalf("Extend() error = %v", err)
		}

		got, ok := table.Lookup("md")
		if !ok || got != models.CategoryDocuments {
			t.Errorf("Lookup(md) = %v, %t; want Documents", got, ok)
		}
	})

	t.Run("DotPrefixAndCase", func(t *testing.T) {
		table := Default()
		if err := table.Extend(map[string]string{".MD": "Documents"}); err != nil {
			t.Fatalf("Extend() error = %v", err)
		}
		if _, ok := table.Lookup("md"); !ok {
			t.Error("extension should be normalized to lowercase without dot")
		}
	})

	t.Run("RejectsUnknownCategory", func(t *testing.T) {
		table := Default()
		if err := table.Extend(map[string]string{"md": "Notes"}); err == nil {
			t.Error("Extend() should reject unknown category")
		}
	})

	t.Run("RejectsBuiltinReassignment", func(t *testing.T) {
		table := Default()
		if err := table.Extend(map[string]string{"pdf": "Documents"}); err == nil {
			t.Error("Extend() should reject reassigning a built-in extension")
		}
	})

	t.Run("AllowsMatchingBuiltin", func(t *testing.T) {
		table := Default()
		if err := table.Extend(map[string]string{"pdf": "PDFs"}); err != nil {
			t.Errorf("Extend() with matching builtin mapping should be a no-op, got %v", err)
		}
	})

	t.Run("RejectsEmptyExtension", func(t *testing.T) {
		table := Default()
		if err := table.Extend(map[string]string{"": "Documents"}); err == nil {
			t.Error("Extend() should reject empty extension")
		}
	})
}
