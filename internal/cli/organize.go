package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sdejongh/desktidy/internal/platform"
	"github.com/sdejongh/desktidy/pkg/category"
	"github.com/sdejongh/desktidy/pkg/config"
	"github.com/sdejongh/desktidy/pkg/dedup"
	"github.com/sdejongh/desktidy/pkg/fingerprint"
	"github.com/sdejongh/desktidy/pkg/logging"
	"github.com/sdejongh/desktidy/pkg/models"
	"github.com/sdejongh/desktidy/pkg/organize"
	"github.com/sdejongh/desktidy/pkg/output"
	"github.com/sdejongh/desktidy/pkg/scan"
	"github.com/sdejongh/desktidy/pkg/storage"
)

// OrganizeFlags holds organize command flags
type OrganizeFlags struct {
	DryRun           bool
	Output           string
	NoProgress       bool
	DuplicatesFolder string
	// Logging flags
	LogFile   string
	LogFormat string
	LogLevel  string
}

var organizeFlags OrganizeFlags

// NewOrganizeCommand creates the organize command
func NewOrganizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize <folder>",
		Short: "Organize files in a folder into category subfolders",
		Long: `Organize files (office documents, PDFs, images, videos, audio) in a
folder into categorized subfolders. Byte-identical duplicate files are
detected by content and moved to a shared Duplicates folder, keeping
the oldest copy in its category. Only top-level files are processed;
subfolders are ignored.`,
		Args: cobra.ExactArgs(1),
		RunE: runOrganize,
	}

	cmd.Flags().BoolVarP(&organizeFlags.DryRun, "dry-run", "n", false, "only analyze files without moving them")
	cmd.Flags().StringVarP(&organizeFlags.Output, "output", "o", "", "output format: human, json")
	cmd.Flags().BoolVar(&organizeFlags.NoProgress, "no-progress", false, "disable the progress bar")
	cmd.Flags().StringVar(&organizeFlags.DuplicatesFolder, "duplicates-folder", "", "folder name for redundant duplicate copies")

	// Logging flags
	cmd.Flags().StringVar(&organizeFlags.LogFile, "log-file", "", "write logs to file")
	cmd.Flags().StringVar(&organizeFlags.LogFormat, "log-format", "", "log format: text, json")
	cmd.Flags().StringVar(&organizeFlags.LogLevel, "log-level", "", "log level: debug, info, warn, error")

	return cmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	folder := platform.NormalizePath(args[0])
	if err := platform.ValidatePath(folder); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOrganizeFlags(cfg)

	logger, err := buildLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	backend, err := storage.NewLocal(folder)
	if err != nil {
		return fmt.Errorf("failed to open target directory: %w", err)
	}
	defer backend.Close()

	table := category.Default()
	if err := table.Extend(cfg.Categories); err != nil {
		return fmt.Errorf("invalid category configuration: %w", err)
	}

	report, err := runPipeline(ctx, cfg, backend, table, logger, organizeFlags.DryRun)
	if err != nil {
		return err
	}

	formatter := buildFormatter(cfg)
	if err := formatter.Report(reportWriter(cfg), report); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	os.Exit(report.Status.ExitCode())
	return nil
}

// runPipeline executes scan, detection, and relocation in sequence
func runPipeline(ctx context.Context, cfg *config.Config, backend storage.Backend, table category.Table, logger logging.Logger, dryRun bool) (*models.OrganizeReport, error) {
	startedAt := time.Now()

	scanner := scan.NewScanner(backend, table, cfg.Organize.DuplicatesFolder, logger)
	scanResult, err := scanner.Scan(ctx)
	if err != nil {
		// Nothing has been touched yet; a listing failure aborts the run
		return nil, err
	}

	fp := fingerprint.New(cfg.Performance.BufferSize)
	progress := output.NewFingerprintProgress(os.Stderr, scanResult.SupportedBytes, progressEnabled(cfg))
	fp.SetProgressCallback(progress.Callback())

	detector := dedup.NewDetector(fp, cfg.Performance.BufferSize, logger)
	groups, err := detector.Detect(ctx, backend, scanResult.Entries)
	progress.Finish()
	if err != nil {
		return nil, fmt.Errorf("duplicate detection failed: %w", err)
	}

	resolver := organize.NewResolver(backend)
	relocator := organize.NewRelocator(backend, resolver, cfg.Organize.DuplicatesFolder, logger)

	var folderActions []models.Action
	if !dryRun {
		folderActions, err = relocator.CreateCategoryFolders(ctx, presentCategories(scanResult))
		if err != nil {
			return nil, err
		}
	}

	outcome, err := relocator.Organize(ctx, scanResult.Entries, groups, dryRun)
	if err != nil {
		return nil, err
	}
	outcome.Actions = append(folderActions, outcome.Actions...)

	status := models.StatusSuccess
	if outcome.MoveFailures > 0 {
		status = models.StatusPartial
	}

	return &models.OrganizeReport{
		RunID:     uuid.New().String(),
		Root:      backend.Root(),
		DryRun:    dryRun,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Scan:      scanResult,
		Outcome:   outcome,
		Status:    status,
	}, nil
}

// presentCategories returns the categories with at least one entry,
// in display order
func presentCategories(scanResult *models.ScanResult) []models.Category {
	var present []models.Category
	for _, c := range models.CategoryOrder() {
		if len(scanResult.ByCategory[c]) > 0 {
			present = append(present, c)
		}
	}
	return present
}

// loadConfig loads the configured or default config file
func loadConfig() (*config.Config, error) {
	if globalFlags.ConfigFile != "" {
		return config.LoadFromFile(globalFlags.ConfigFile)
	}
	return config.LoadDefault()
}

// applyOrganizeFlags overrides config values with explicit flags
func applyOrganizeFlags(cfg *config.Config) {
	if organizeFlags.Output != "" {
		cfg.Output.Format = organizeFlags.Output
	}
	if organizeFlags.NoProgress {
		cfg.Output.Progress = false
	}
	if organizeFlags.DuplicatesFolder != "" {
		cfg.Organize.DuplicatesFolder = organizeFlags.DuplicatesFolder
	}
	if organizeFlags.LogFile != "" {
		cfg.Logging.File = organizeFlags.LogFile
	}
	if organizeFlags.LogFormat != "" {
		cfg.Logging.Format = organizeFlags.LogFormat
	}
	if organizeFlags.LogLevel != "" {
		cfg.Logging.Level = organizeFlags.LogLevel
	}
	if globalFlags.Quiet {
		cfg.Output.Quiet = true
		cfg.Output.Progress = false
	}
}

// buildLogger creates the run logger. A configured log file wins;
// otherwise verbose mode narrates to stderr and anything else is
// discarded.
func buildLogger(cfg *config.Config) (logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NewNullLogger(), nil
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	format := logging.FormatText
	if cfg.Logging.Format == "json" {
		format = logging.FormatJSON
	}

	if cfg.Logging.File != "" {
		return logging.NewFileLogger(logging.FileLoggerConfig{
			Path:    cfg.Logging.File,
			Format:  format,
			Level:   level,
			MaxSize: 10 * 1024 * 1024,
		})
	}

	if globalFlags.Verbose {
		return logging.NewWriterLogger(os.Stderr, format, logging.DebugLevel), nil
	}

	return logging.NewNullLogger(), nil
}

// buildFormatter selects the report formatter
func buildFormatter(cfg *config.Config) output.Formatter {
	if cfg.Output.Format == "json" {
		return output.NewJSONFormatter()
	}
	return output.NewHumanFormatter()
}

// reportWriter returns where the report goes; quiet mode discards
// human output but never JSON, which is meant for scripting
func reportWriter(cfg *config.Config) io.Writer {
	if cfg.Output.Quiet && cfg.Output.Format != "json" {
		return io.Discard
	}
	return os.Stdout
}

// progressEnabled decides whether the fingerprint progress bar runs
func progressEnabled(cfg *config.Config) bool {
	return cfg.Output.Progress && !cfg.Output.Quiet && cfg.Output.Format != "json"
}
