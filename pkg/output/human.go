package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sdejongh/desktidy/pkg/models"
)

// categoryColors maps category color names to terminal attributes
var categoryColors = map[string]color.Attribute{
	"blue":    color.FgBlue,
	"red":     color.FgRed,
	"magenta": color.FgMagenta,
	"green":   color.FgGreen,
	"cyan":    color.FgCyan,
	"yellow":  color.FgYellow,
	"white":   color.FgWhite,
}

// HumanFormatter renders reports for terminal reading: a category
// table, the duplicate groups, and the action log.
type HumanFormatter struct{}

// NewHumanFormatter creates a new human-readable formatter
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// Report renders the full report
func (f *HumanFormatter) Report(w io.Writer, report *models.OrganizeReport) error {
	if report.DryRun {
		fmt.Fprintf(w, "\nAnalysis mode: no files will be moved\n")
	}

	f.renderCategoryTable(w, report.Scan)
	f.renderDuplicates(w, report.Outcome.Duplicates)
	f.renderActions(w, report)

	fmt.Fprintf(w, "\nCompleted in %s (run %s)\n",
		report.Duration.Round(time.Millisecond), report.RunID)

	if report.Outcome.MoveFailures > 0 {
		fmt.Fprintf(w, "Warning: %d file(s) could not be moved and were left in place\n",
			report.Outcome.MoveFailures)
	}

	return nil
}

// renderCategoryTable prints one row per non-empty category
func (f *HumanFormatter) renderCategoryTable(w io.Writer, scan *models.ScanResult) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Category", "Count", "Files"})

	for _, c := range models.CategoryOrder() {
		entries := scan.ByCategory[c]
		if len(entries) == 0 {
			continue
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.RelativePath)
		}

		t.AppendRow(table.Row{
			f.colorize(c),
			len(entries),
			strings.Join(names, "\n"),
		})
	}

	fmt.Fprintln(w)
	t.Render()
	fmt.Fprintf(w, "Scanned %d files, %d supported\n", scan.TotalFiles, scan.SupportedFiles)
}

// renderDuplicates lists each group with its members, canonical first
func (f *HumanFormatter) renderDuplicates(w io.Writer, groups []models.DuplicateGroup) {
	if len(groups) == 0 {
		return
	}

	fmt.Fprintf(w, "\nDuplicate files found:\n")
	for _, g := range groups {
		fmt.Fprintf(w, "  Group %s: %d files\n", shortKey(g.Key), len(g.Files))
		for i, file := range g.Files {
			marker := "-"
			if i == 0 {
				marker = "*" // canonical survivor
			}
			fmt.Fprintf(w, "    %s %s\n", marker, file.RelativePath)
		}
	}
}

// renderActions prints the action log, or a notice when nothing moved
func (f *HumanFormatter) renderActions(w io.Writer, report *models.OrganizeReport) {
	actions := report.Outcome.Actions
	if len(actions) == 0 {
		fmt.Fprintf(w, "\nNo files found to organize.\n")
		return
	}

	label := "Actions taken"
	if report.DryRun {
		label = "Proposed actions"
	}

	fmt.Fprintf(w, "\n%s:\n", label)
	for _, a := range actions {
		fmt.Fprintf(w, "  %s\n", a.Describe())
	}
}

// colorize renders a category name in its display color
func (f *HumanFormatter) colorize(c models.Category) string {
	attr, ok := categoryColors[c.Color()]
	if !ok {
		return c.String()
	}
	return color.New(attr).Sprint(c.String())
}

// shortKey abbreviates an identity key for display
func shortKey(key string) string {
	if len(key) > 16 {
		return key[:16]
	}
	return key
}

// Name returns the formatter name
func (f *HumanFormatter) Name() string {
	return "human"
}
