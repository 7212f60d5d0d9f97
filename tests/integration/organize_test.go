package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sdejongh/desktidy/pkg/category"
	"github.com/sdejongh/desktidy/pkg/dedup"
	"github.com/sdejongh/desktidy/pkg/fingerprint"
	"github.com/sdejongh/desktidy/pkg/models"
	"github.com/sdejongh/desktidy/pkg/organize"
	"github.com/sdejongh/desktidy/pkg/scan"
	"github.com/sdejongh/desktidy/pkg/storage"
)

// TestHelper drives the full organize pipeline against a temp directory
type TestHelper struct {
	t       *testing.T
	tempDir string
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "desktidy-integration-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	return &TestHelper{t: t, tempDir: tempDir}
}

func (h *TestHelper) WriteFile(name, content string) {
	h.t.Helper()
	path := filepath.Join(h.tempDir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		h.t.Fatalf("failed to write %s: %v", name, err)
	}
}

func (h *TestHelper) FileExists(name string) bool {
	h.t.Helper()
	_, err := os.Stat(filepath.Join(h.tempDir, name))
	return err == nil
}

// Run executes scan, duplicate detection, folder creation and
// relocation the way the organize command wires them
func (h *TestHelper) Run(dryRun bool) (*models.ScanResult, *models.OrganizeOutcome) {
	h.t.Helper()
	ctx := context.Background()

	backend, err := storage.NewLocal(h.tempDir)
	if err != nil {
		h.t.Fatalf("failed to create backend: %v", err)
	}
	defer backend.Close()

	scanner := scan.NewScanner(backend, category.Default(), "Duplicates", nil)
	result, err := scanner.Scan(ctx)
	if err != nil {
		h.t.Fatalf("Scan() error = %v", err)
	}

	detector := dedup.NewDetector(fingerprint.New(4096), 4096, nil)
	groups, err := detector.Detect(ctx, backend, result.Entries)
	if err != nil {
		h.t.Fatalf("Detect() error = %v", err)
	}

	relocator := organize.NewRelocator(backend, organize.NewResolver(backend), "Duplicates", nil)

	if !dryRun {
		var categories []models.Category
		for _, c := range models.CategoryOrder() {
			if len(result.ByCategory[c]) > 0 {
				categories = append(categories, c)
			}
		}
		if _, err := relocator.CreateCategoryFolders(ctx, categories); err != nil {
			h.t.Fatalf("CreateCategoryFolders() error = %v", err)
		}
	}

	outcome, err := relocator.Organize(ctx, result.Entries, groups, dryRun)
	if err != nil {
		h.t.Fatalf("Organize() error = %v", err)
	}

	return result, outcome
}

func TestOrganizeFullPipeline(t *testing.T) {
	h := NewTestHelper(t)

	h.WriteFile("report.pdf", "pdf bytes")
	h.WriteFile("slides.pptx", "presentation bytes")
	h.WriteFile("photo.jpg", "image bytes")
	h.WriteFile("song.mp3", "audio bytes")
	h.WriteFile("notes.unknown", "unsupported")

	result, outcome := h.Run(false)

	if result.TotalFiles != 5 {
		t.Errorf("TotalFiles = %d, want 5", result.TotalFiles)
	}
	if result.SupportedFiles != 4 {
		t.Errorf("SupportedFiles = %d, want 4", result.SupportedFiles)
	}

	for _, want := range []string{
		filepath.Join("PDFs", "report.pdf"),
		filepath.Join("Presentations", "slides.pptx"),
		filepath.Join("Images", "photo.jpg"),
		filepath.Join("Audio", "song.mp3"),
	} {
		if !h.FileExists(want) {
			t.Errorf("%s missing after organize", want)
		}
	}

	// Unsupported files stay put
	if !h.FileExists("notes.unknown") {
		t.Error("unsupported file must remain in place")
	}

	if len(outcome.Actions) != 4 {
		t.Errorf("got %d actions, want 4", len(outcome.Actions))
	}
	if outcome.MoveFailures != 0 {
		t.Errorf("MoveFailures = %d, want 0", outcome.MoveFailures)
	}
}

func TestOrganizeDuplicatePair(t *testing.T) {
	h := NewTestHelper(t)

	// Byte-identical pair: the first-discovered file survives
	h.WriteFile("a.pdf", "identical pdf content")
	h.WriteFile("b.pdf", "identical pdf content")

	_, outcome := h.Run(false)

	if len(outcome.Duplicates) != 1 {
		t.Fatalf("got %d duplicate groups, want 1", len(outcome.Duplicates))
	}
	if outcome.Duplicates[0].Canonical().Name != "a.pdf" {
		t.Errorf("canonical = %s, want a.pdf", outcome.Duplicates[0].Canonical().Name)
	}

	if !h.FileExists(filepath.Join("PDFs", "a.pdf")) {
		t.Error("canonical copy missing from PDFs folder")
	}
	if !h.FileExists(filepath.Join("Duplicates", "b.pdf")) {
		t.Error("redundant copy missing from Duplicates folder")
	}
	if h.FileExists("a.pdf") || h.FileExists("b.pdf") {
		t.Error("top level should be empty after organize")
	}
}

func TestOrganizeDryRunLeavesEverything(t *testing.T) {
	h := NewTestHelper(t)

	h.WriteFile("a.pdf", "same content")
	h.WriteFile("b.pdf", "same content")
	h.WriteFile("photo.jpg", "photo")

	_, outcome := h.Run(true)

	// Every proposed action, zero mutation
	if len(outcome.Actions) != 3 {
		t.Errorf("got %d previewed actions, want 3", len(outcome.Actions))
	}
	for _, name := range []string{"a.pdf", "b.pdf", "photo.jpg"} {
		if !h.FileExists(name) {
			t.Errorf("%s moved during dry run", name)
		}
	}
	if h.FileExists("PDFs") || h.FileExists("Images") || h.FileExists("Duplicates") {
		t.Error("dry run must not create any folders")
	}
}

func TestOrganizeIdempotentRerun(t *testing.T) {
	h := NewTestHelper(t)

	h.WriteFile("doc.docx", "document")
	h.WriteFile("copy.docx", "document")

	h.Run(false)

	// Second run over the organized directory sees only folders
	result, outcome := h.Run(false)

	if result.TotalFiles != 0 {
		t.Errorf("second run TotalFiles = %d, want 0", result.TotalFiles)
	}
	if len(outcome.Actions) != 0 {
		t.Errorf("second run produced %d actions, want 0", len(outcome.Actions))
	}
	if !h.FileExists(filepath.Join("Documents", "doc.docx")) {
		t.Error("organized file disturbed by rerun")
	}
	if !h.FileExists(filepath.Join("Duplicates", "copy.docx")) {
		t.Error("segregated duplicate disturbed by rerun")
	}
}

func TestOrganizeCleansCounterSuffixes(t *testing.T) {
	h := NewTestHelper(t)

	h.WriteFile("doc_1.docx", "first body")
	h.WriteFile("doc.docx", "second body")

	h.Run(false)

	// doc_1.docx cleans to doc.docx, which is taken, so it gets a counter
	if !h.FileExists(filepath.Join("Documents", "doc.docx")) {
		t.Error("doc.docx missing from Documents folder")
	}
	if !h.FileExists(filepath.Join("Documents", "doc (1).docx")) {
		t.Error("cleaned name not disambiguated with a counter")
	}
	if h.FileExists(filepath.Join("Documents", "doc_1.docx")) {
		t.Error("counter suffix should have been stripped")
	}
}

func TestOrganizeThreeWayDuplicates(t *testing.T) {
	h := NewTestHelper(t)

	h.WriteFile("x.jpg", "same image bytes")
	h.WriteFile("y.jpg", "same image bytes")
	h.WriteFile("z.jpg", "same image bytes")

	_, outcome := h.Run(false)

	if len(outcome.Duplicates) != 1 {
		t.Fatalf("got %d groups, want 1", len(outcome.Duplicates))
	}
	if got := len(outcome.Duplicates[0].Files); got != 3 {
		t.Fatalf("group has %d files, want 3", got)
	}

	if !h.FileExists(filepath.Join("Images", "x.jpg")) {
		t.Error("survivor missing from Images folder")
	}
	for _, name := range []string{"y.jpg", "z.jpg"} {
		if !h.FileExists(filepath.Join("Duplicates", name)) {
			t.Errorf("%s missing from Duplicates folder", name)
		}
	}
}

func TestOrganizeEmptyDirectory(t *testing.T) {
	h := NewTestHelper(t)

	result, outcome := h.Run(false)

	if result.TotalFiles != 0 {
		t.Errorf("TotalFiles = %d, want 0", result.TotalFiles)
	}
	if len(outcome.Actions) != 0 {
		t.Errorf("got %d actions, want 0", len(outcome.Actions))
	}
}
