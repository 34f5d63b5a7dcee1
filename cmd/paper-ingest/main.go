// paper-ingest is the interactive front-end: a numeric menu over the batch
// and manual indexing operations.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/research-center/paper-ingest/internal/archive"
	"github.com/research-center/paper-ingest/internal/classify"
	"github.com/research-center/paper-ingest/internal/common"
	"github.com/research-center/paper-ingest/internal/export"
	"github.com/research-center/paper-ingest/internal/extract"
	"github.com/research-center/paper-ingest/internal/index"
	"github.com/research-center/paper-ingest/internal/journal"
	"github.com/research-center/paper-ingest/internal/pdftool"
	"github.com/research-center/paper-ingest/internal/pipeline"
	"github.com/research-center/paper-ingest/internal/toolexec"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ws, err := archive.NewWorkspace(cfg.Workspace.Root)
	if err != nil {
		logger.Error("workspace setup failed", "root", cfg.Workspace.Root, "error", err)
		os.Exit(1)
	}

	jr, err := journal.Open(cfg.JournalPath(), logger)
	if err != nil {
		logger.Warn("run journal unavailable, continuing without it", "path", cfg.JournalPath(), "error", err)
		jr = nil
	}
	defer jr.Close()

	runner := toolexec.NewRunner(cfg.Tools.Timeout)
	fonts := pdftool.NewFontInspector(cfg.Tools.Pdffonts, runner, logger)
	ocrTool := pdftool.NewOCRTransformer(cfg.Tools.OCRmyPDF, runner, logger)
	raster := pdftool.NewRasterExtractor(cfg.Tools.Pdfimages, runner, logger)

	opts := pdftool.DefaultOCROptions()
	opts.Language = cfg.Tools.OCRLanguage

	builder := index.NewBuilder(ws.MetaDir, logger)
	manual := index.NewManualIndexer(ws.ImagesDir, builder, logger)
	proc := pipeline.NewProcessor(
		ws,
		classify.NewClassifier(fonts, logger),
		pipeline.NewOCRStage(ws, ocrTool, opts, logger),
		pipeline.NewIndexStage(extract.NewImageExtractor(ws.ImagesDir, raster, logger), builder, logger),
		jr,
		logger,
	)
	exporter := export.NewService(jr, logger)

	ctx := context.Background()
	in := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nPDF Processing Workflow:")
		fmt.Println("1) Check and run OCR on PDFs in input/")
		fmt.Println("2) Extract images and generate index records for PDFs in input/")
		fmt.Println("3) Generate an index record from existing images (manual extractions)")
		fmt.Println("4) OCR, image extraction and index generation (1 + 2)")
		fmt.Println("5) Export run summary (XLSX)")
		fmt.Println("6) Quit")

		choice, ok := readIntRange(in, "Choose an option (1-6): ", 1, 6)
		if !ok {
			return
		}

		switch choice {
		case 1:
			reportBatch(proc.OCRAll(ctx))
		case 2:
			reportBatch(proc.IndexAll(ctx))
		case 3:
			runManualIndex(in, manual)
		case 4:
			reportBatch(proc.ProcessAll(ctx))
		case 5:
			exportRuns(ctx, exporter, cfg.Workspace.Root)
		case 6:
			fmt.Println("Exiting...")
			return
		}
	}
}

func runManualIndex(in *bufio.Scanner, manual *index.ManualIndexer) {
	paperID, ok := readLine(in, "Enter paper ID (e.g., P0010): ")
	if !ok {
		return
	}
	folder, ok := readLine(in, "Image folder (press Enter for the default images folder): ")
	if !ok {
		return
	}
	path, err := manual.BuildFromImages(paperID, folder)
	if err != nil {
		fmt.Printf("[ERROR] %v\n", err)
		return
	}
	fmt.Printf("[OK] manual index written to %s\n", path)
}

func exportRuns(ctx context.Context, exporter *export.Service, root string) {
	data, err := exporter.RunsXLSX(ctx)
	if err != nil {
		fmt.Printf("[ERROR] export failed: %v\n", err)
		return
	}
	out := filepath.Join(root, "run_summary.xlsx")
	if err := os.WriteFile(out, data, 0o644); err != nil {
		fmt.Printf("[ERROR] could not write %s: %v\n", out, err)
		return
	}
	fmt.Printf("[OK] run summary written to %s\n", out)
}

func reportBatch(stats pipeline.BatchStats, err error) {
	if err != nil {
		fmt.Printf("[ERROR] batch aborted: %v\n", err)
		return
	}
	fmt.Printf("[OK] processed=%d skipped=%d failed=%d\n", stats.Processed, stats.Skipped, stats.Failed)
}

// readIntRange keeps prompting until it gets an integer in [low, high].
// Returns ok=false on EOF.
func readIntRange(in *bufio.Scanner, prompt string, low, high int) (int, bool) {
	for {
		fmt.Print(prompt)
		if !in.Scan() {
			return 0, false
		}
		value, err := strconv.Atoi(strings.TrimSpace(in.Text()))
		if err != nil {
			fmt.Println("Please enter an integer")
			continue
		}
		if value < low || value > high {
			fmt.Printf("Please enter an integer between %d and %d\n", low, high)
			continue
		}
		return value, true
	}
}

func readLine(in *bufio.Scanner, prompt string) (string, bool) {
	fmt.Print(prompt)
	if !in.Scan() {
		return "", false
	}
	return strings.TrimSpace(in.Text()), true
}
