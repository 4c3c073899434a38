package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/observability"
	"github.com/jonathan/tabcheck/internal/pipeline"
)

var batchCmd = &cobra.Command{
	Use:   "batch [FILE...]",
	Short: "Validate many files concurrently",
	Long: "Runs the base checks and then the content checks on every file. Files are " +
		"independent: a failing file never stops the others. Results are printed in input order.",
	RunE: runBatch,
}

var (
	batchList        string
	batchWorkers     int
	batchOutDir      string
	batchReport      string
	batchSkipBase    bool
	batchSkipContent bool
	batchVerbose     bool
)

func init() {
	flags := batchCmd.Flags()
	flags.StringVarP(&batchList, "list", "l", "", "File holding one input path per line")
	flags.IntVarP(&batchWorkers, "workers", "w", 0, "Concurrent checks (default from TABCHECK_WORKERS)")
	flags.StringVarP(&batchOutDir, "out-dir", "o", "", "Directory for preprocessed working copies (default: a temporary directory)")
	flags.StringVar(&batchReport, "report", "", "Write a JSON report to this path")
	flags.BoolVar(&batchSkipBase, "skip-base", false, "Skip the base checks")
	flags.BoolVar(&batchSkipContent, "skip-content", false, "Skip the content checks")
	flags.BoolVarP(&batchVerbose, "verbose", "v", false, "Print a box for every file")

	rootCmd.AddCommand(batchCmd)
}

// readList returns the non-blank, non-comment lines of path.
func readList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file list: %w", err)
	}
	defer func() { _ = f.Close() }()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		files = append(files, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file list: %w", err)
	}
	return files, nil
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runBatch(cmd *cobra.Command, args []string) error {
	files := args
	if batchList != "" {
		listed, err := readList(batchList)
		if err != nil {
			return err
		}
		files = append(files, listed...)
	}
	if len(files) == 0 {
		return fmt.Errorf("no input files: pass paths or --list")
	}

	base, err := app.profile.BaseOptions("")
	if err != nil {
		return err
	}
	content, err := app.profile.ContentOptions(batchOutDir, app.settings.NAMarkers)
	if err != nil {
		return err
	}
	workers := batchWorkers
	if workers <= 0 {
		workers = app.settings.Workers
	}

	w := cmd.OutOrStdout()
	printer := observability.NewPrinter(w)
	result, err := pipeline.Run(cmd.Context(), pipeline.Options{
		Files:       files,
		Sep:         app.sep,
		Context:     app.ctx,
		Base:        base,
		SkipBase:    batchSkipBase,
		Content:     content,
		SkipContent: batchSkipContent,
		Workers:     workers,
		Profile:     app.profile.Name,
		OnProgress: func(e pipeline.ProgressEvent) {
			app.logger.Info("checked", "file", e.Report.File, "passed", e.Report.Passed, "index", e.Index+1, "total", e.Total)
		},
	})
	if err != nil {
		return err
	}

	for i := range result.Reports {
		r := &result.Reports[i]
		if batchVerbose {
			printer.PrintReport(r)
			continue
		}
		for _, m := range r.Messages {
			fmt.Fprintln(w, m.Text)
		}
	}
	if batchVerbose {
		printer.PrintSummary(result)
	}
	app.say(w, "batch_summary", map[string]string{
		"Total":  strconv.Itoa(result.Total),
		"Failed": strconv.Itoa(result.Failed),
	})

	if batchReport != "" {
		if err := writeReportDoc(cmd, batchReport, result); err != nil {
			return err
		}
	}
	if !result.Passed() {
		return errChecksFailed
	}
	return nil
}
