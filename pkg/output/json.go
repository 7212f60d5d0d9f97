package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/sdejongh/desktidy/pkg/models"
)

// JSONFormatter renders reports as JSON for automation and scripting
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// jsonReport is the wire shape of an organize report
type jsonReport struct {
	RunID      string       `json:"run_id"`
	Root       string       `json:"root"`
	DryRun     bool         `json:"dry_run"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMs int64        `json:"duration_ms"`
	Status     string       `json:"status"`
	Scan       jsonScan     `json:"scan"`
	Duplicates []jsonGroup  `json:"duplicates,omitempty"`
	Actions    []jsonAction `json:"actions,omitempty"`
	Failures   int          `json:"move_failures,omitempty"`
}

// jsonScan summarizes the directory scan
type jsonScan struct {
	TotalFiles     int            `json:"total_files"`
	SupportedFiles int            `json:"supported_files"`
	Categories     []jsonCategory `json:"categories,omitempty"`
}

// jsonCategory lists the files of one category
type jsonCategory struct {
	Category string   `json:"category"`
	Files    []string `json:"files"`
}

// jsonGroup is one duplicate group, canonical first
type jsonGroup struct {
	Key       string   `json:"key"`
	Canonical string   `json:"canonical"`
	Redundant []string `json:"redundant"`
}

// jsonAction is one relocation decision
type jsonAction struct {
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Category    string `json:"category,omitempty"`
	Destination string `json:"destination,omitempty"`
	DuplicateOf string `json:"duplicate_of,omitempty"`
	Description string `json:"description"`
}

// Report renders the report as indented JSON
func (f *JSONFormatter) Report(w io.Writer, report *models.OrganizeReport) error {
	out := jsonReport{
		RunID:      report.RunID,
		Root:       report.Root,
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt,
		DurationMs: report.Duration.Milliseconds(),
		Status:     string(report.Status),
		Scan: jsonScan{
			TotalFiles:     report.Scan.TotalFiles,
			SupportedFiles: report.Scan.SupportedFiles,
		},
		Failures: report.Outcome.MoveFailures,
	}

	for _, c := range models.CategoryOrder() {
		entries := report.Scan.ByCategory[c]
		if len(entries) == 0 {
			continue
		}
		jc := jsonCategory{Category: c.String()}
		for _, e := range entries {
			jc.Files = append(jc.Files, e.RelativePath)
		}
		out.Scan.Categories = append(out.Scan.Categories, jc)
	}

	for _, g := range report.Outcome.Duplicates {
		jg := jsonGroup{Key: g.Key, Canonical: g.Canonical().RelativePath}
		for _, e := range g.Redundant() {
			jg.Redundant = append(jg.Redundant, e.RelativePath)
		}
		out.Duplicates = append(out.Duplicates, jg)
	}

	for _, a := range report.Outcome.Actions {
		out.Actions = append(out.Actions, jsonAction{
			Type:        string(a.Type),
			Name:        a.Name,
			Category:    a.Category.String(),
			Destination: a.Destination,
			DuplicateOf: a.DuplicateOf,
			Description: a.Describe(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Name returns the formatter name
func (f *JSONFormatter) Name() string {
	return "json"
}
