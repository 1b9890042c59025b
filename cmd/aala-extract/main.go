package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"syscall"

	"github.com/vehiclefacts/aala-extract/internal/aala"
	"github.com/vehiclefacts/aala-extract/internal/config"
	"github.com/vehiclefacts/aala-extract/internal/export"
	"github.com/vehiclefacts/aala-extract/internal/fetch"
	"github.com/vehiclefacts/aala-extract/internal/pdf"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

// setupLogging configures logging based on the configured log level.
func setupLogging(cfg *config.Config) {
	log.SetOutput(os.Stderr)
	if cfg.IsDebug() {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}
}

// collectRows gathers raw table rows for every configured year. A year that
// cannot be fetched or read is logged and skipped; it contributes no rows.
func collectRows(ctx context.Context, cfg *config.Config) (map[int][]aala.RawRow, []int) {
	client := fetch.NewClient(cfg.DataDir)
	validator := pdf.NewValidator(cfg.MaxFileSize)
	extractor := pdf.NewTableExtractor(cfg.MaxFileSize)

	rowsByYear := make(map[int][]aala.RawRow)
	var failed []int

	for _, year := range cfg.Years() {
		if ctx.Err() != nil {
			break
		}

		path, err := reportPath(ctx, client, cfg, year)
		if err != nil {
			log.Printf("Skipping %d: %v", year, err)
			failed = append(failed, year)
			continue
		}

		if err := validator.ValidateFile(path); err != nil {
			log.Printf("Skipping %d: %v", year, err)
			failed = append(failed, year)
			continue
		}

		pages, err := extractor.ExtractPages(path)
		if err != nil {
			log.Printf("Skipping %d: %v", year, err)
			failed = append(failed, year)
			continue
		}

		var rows []aala.RawRow
		for _, grid := range pages {
			for _, cells := range grid {
				rows = append(rows, aala.RawRow{Cells: cells, Year: year})
			}
		}
		rowsByYear[year] = rows

		if cfg.IsDebug() {
			log.Printf("Year %d: %d pages, %d raw rows from %s", year, len(pages), len(rows), path)
		}
	}

	return rowsByYear, failed
}

// reportPath resolves a year's report PDF, downloading it unless offline mode
// restricts the run to the cache.
func reportPath(ctx context.Context, client *fetch.Client, cfg *config.Config, year int) (string, error) {
	if cfg.Offline {
		path := client.CachePath(year)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("no cached report: %w", err)
		}
		return path, nil
	}
	return client.FetchYear(ctx, year)
}

// logSummary reports what the run produced and what it discarded.
func logSummary(result *aala.Result, failed []int) {
	log.Printf("Assembled %d records from %d data rows", len(result.Records), result.DataRows())

	if result.DroppedTotal() > 0 {
		reasons := make([]string, 0, len(result.Drops))
		for reason := range result.Drops {
			reasons = append(reasons, reason)
		}
		sort.Strings(reasons)
		for _, reason := range reasons {
			log.Printf("Dropped %d rows: %s", result.Drops[reason], reason)
		}
	}

	for _, kind := range []aala.RowKind{aala.RowLegend, aala.RowHeader, aala.RowNoise} {
		if n := result.Classified[kind]; n > 0 {
			log.Printf("Filtered %d %s rows", n, kind)
		}
	}

	if len(failed) > 0 {
		log.Printf("Years without data: %v", failed)
	}
}

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			printVersion()
			return
		}
	}

	cfg, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	// Set version if it was provided during build
	if version != "dev" {
		cfg.Version = version
	}

	if cfg.IsDebug() {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	// Ctrl-C abandons years not yet started; finished years still export.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rowsByYear, failed := collectRows(ctx, cfg)
	if len(rowsByYear) == 0 {
		log.Fatalf("No report data for any year in %d-%d", cfg.FirstYear, cfg.LastYear)
	}

	layout := aala.DefaultColumnLayout()
	driver := aala.NewDriver(
		aala.NewClassifier(layout.MinColumns),
		aala.NewAssembler(layout, aala.NewCountryResolver()),
		cfg.Workers,
	)
	result := driver.Run(ctx, rowsByYear)

	logSummary(result, failed)

	if err := export.WriteCSV(cfg.OutputCSV, result.Records); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	log.Printf("Wrote %d records to %s", len(result.Records), cfg.OutputCSV)

	if cfg.DBPath != "" {
		if err := export.WriteSQLite(ctx, cfg.DBPath, result.Records); err != nil {
			log.Fatalf("Failed to write SQLite database: %v", err)
		}
		log.Printf("Wrote %d records to %s", len(result.Records), cfg.DBPath)
	}
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("AALA Extract\n")
	fmt.Printf("Version: %s\n", version)
	fmt.Printf("Build Time: %s\n", buildTime)
	fmt.Printf("Git Commit: %s\n", gitCommit)
	fmt.Printf("Built with: %s\n", runtime.Version())
}
