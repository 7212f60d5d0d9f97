package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sdejongh/desktidy/pkg/models"
)

func sampleReport(dryRun bool) *models.OrganizeReport {
	entryA := models.FileEntry{Name: "a.pdf", RelativePath: "a.pdf", Size: 120, Category: models.CategoryPDFs}
	entryB := models.FileEntry{Name: "b.pdf", RelativePath: "b.pdf", Size: 120, Category: models.CategoryPDFs}
	entryC := models.FileEntry{Name: "photo.jpg", RelativePath: "photo.jpg", Size: 2048, Category: models.CategoryImages}

	return &models.OrganizeReport{
		RunID:     "11111111-2222-3333-4444-555555555555",
		Root:      "/home/user/Desktop",
		DryRun:    dryRun,
		StartedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Duration:  142 * time.Millisecond,
		Scan: &models.ScanResult{
			TotalFiles:     4,
			SupportedFiles: 3,
			SupportedBytes: 2288,
			Entries:        []models.FileEntry{entryA, entryB, entryC},
			ByCategory: map[models.Category][]models.FileEntry{
				models.CategoryPDFs:   {entryA, entryB},
				models.CategoryImages: {entryC},
			},
		},
		Outcome: &models.OrganizeOutcome{
			Duplicates: []models.DuplicateGroup{{
				Key:   "120_abcdef0123456789_fedcba9876543210",
				Files: []models.FileEntry{entryA, entryB},
			}},
			Actions: []models.Action{
				{Type: models.ActionCreateFolder, Category: models.CategoryPDFs, DryRun: dryRun},
				{Type: models.ActionMove, Name: "a.pdf", Category: models.CategoryPDFs, Destination: "PDFs/a.pdf", DryRun: dryRun},
				{Type: models.ActionMoveDuplicate, Name: "b.pdf", Folder: "Duplicates", Destination: "Duplicates/b.pdf", DuplicateOf: "a.pdf", DryRun: dryRun},
			},
		},
		Status: models.StatusSuccess,
	}
}

func TestHumanFormatterReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()

	if err := f.Report(&buf, sampleReport(false)); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"PDFs",
		"Images",
		"Scanned 4 files, 3 supported",
		"Duplicate files found:",
		"* a.pdf",
		"- b.pdf",
		"Actions taken:",
		"Moved a.pdf to PDFs folder",
		"Moved duplicate b.pdf to Duplicates folder (identical to a.pdf)",
		"Completed in 142ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}

	if strings.Contains(out, "Analysis mode") {
		t.Error("real run must not show the dry-run banner")
	}
}

func TestHumanFormatterDryRun(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()

	if err := f.Report(&buf, sampleReport(true)); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Analysis mode: no files will be moved") {
		t.Error("dry run must show the analysis banner")
	}
	if !strings.Contains(out, "Proposed actions:") {
		t.Error("dry run must label actions as proposed")
	}
	if !strings.Contains(out, "Would move a.pdf to PDFs folder") {
		t.Errorf("dry-run action not in conditional phrasing:\n%s", out)
	}
}

func TestHumanFormatterEmptyRun(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()

	report := &models.OrganizeReport{
		RunID:    "run",
		Root:     "/tmp/empty",
		Duration: time.Millisecond,
		Scan:     &models.ScanResult{ByCategory: map[models.Category][]models.FileEntry{}},
		Outcome:  &models.OrganizeOutcome{},
		Status:   models.StatusSuccess,
	}

	if err := f.Report(&buf, report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No files found to organize.") {
		t.Errorf("empty run notice missing:\n%s", buf.String())
	}
}

func TestHumanFormatterMoveFailureWarning(t *testing.T) {
	var buf bytes.Buffer
	f := NewHumanFormatter()

	report := sampleReport(false)
	report.Outcome.MoveFailures = 2
	report.Status = models.StatusPartial

	if err := f.Report(&buf, report); err != nil {
		t.Fatalf("Report() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Warning: 2 file(s) could not be moved") {
		t.Errorf("move failure warning missing:\n%s", buf.String())
	}
}

func TestJSONFormatterReport(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter()

	if err := f.Report(&buf, sampleReport(false)); err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	var decoded struct {
		RunID      string `json:"run_id"`
		Root       string `json:"root"`
		DryRun     bool   `json:"dry_run"`
		DurationMs int64  `json:"duration_ms"`
		Status     string `json:"status"`
		Scan       struct {
			TotalFiles     int `json:"total_files"`
			SupportedFiles int `json:"supported_files"`
			Categories     []struct {
				Category string   `json:"category"`
				Files    []string `json:"files"`
			} `json:"categories"`
		} `json:"scan"`
		Duplicates []struct {
			Key       string   `json:"key"`
			Canonical string   `json:"canonical"`
			Redundant []string `json:"redundant"`
		} `json:"duplicates"`
		Actions []struct {
			Type        string `json:"type"`
			Description string `json:"description"`
		} `json:"actions"`
	}

	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if decoded.Status != "success" {
		t.Errorf("status = %s, want success", decoded.Status)
	}
	if decoded.DurationMs != 142 {
		t.Errorf("duration_ms = %d, want 142", decoded.DurationMs)
	}
	if decoded.Scan.TotalFiles != 4 || decoded.Scan.SupportedFiles != 3 {
		t.Errorf("scan = %d/%d, want 4/3", decoded.Scan.TotalFiles, decoded.Scan.SupportedFiles)
	}

	if len(decoded.Duplicates) != 1 {
		t.Fatalf("got %d duplicate groups, want 1", len(decoded.Duplicates))
	}
	if decoded.Duplicates[0].Canonical != "a.pdf" {
		t.Errorf("canonical = %s, want a.pdf", decoded.Duplicates[0].Canonical)
	}
	if len(decoded.Duplicates[0].Redundant) != 1 || decoded.Duplicates[0].Redundant[0] != "b.pdf" {
		t.Errorf("redundant = %v, want [b.pdf]", decoded.Duplicates[0].Redundant)
	}

	if len(decoded.Actions) != 3 {
		t.Errorf("got %d actions, want 3", len(decoded.Actions))
	}

	// Category table order is fixed, so output is stable across runs
	var again bytes.Buffer
	if err := f.Report(&again, sampleReport(false)); err != nil {
		t.Fatal(err)
	}
	if buf.String() != again.String() {
		t.Error("JSON output is not deterministic")
	}
}

func TestFormatterNames(t *testing.T) {
	if got := NewHumanFormatter().Name(); got != "human" {
		t.Errorf("HumanFormatter.Name() = %s, want human", got)
	}
	if got := NewJSONFormatter().Name(); got != "json" {
		t.Errorf("JSONFormatter.Name() = %s, want json", got)
	}
}
