package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/pipeline"
	"github.com/jonathan/tabcheck/internal/schemas"
	"github.com/jonathan/tabcheck/internal/types"
	"github.com/jonathan/tabcheck/internal/validation"
)

var contentCmd = &cobra.Command{
	Use:   "content FILE",
	Short: "Run the staged content checks on a table",
	Long: "Preprocesses the table into a working copy, then checks separators, header, " +
		"duplicate lines, dimensions, row and column content, fixed headings, value types, " +
		"numeric ranges and standardization. Later stages only run when earlier ones pass.",
	Args: cobra.ExactArgs(1),
	RunE: runContent,
}

var (
	contentOutDir        string
	contentNewName       string
	contentNoPreprocess  bool
	contentKeepSpace     bool
	contentCheckSep      bool
	contentCheckHeader   bool
	contentCheckDupLines bool
	contentRows          int
	contentCols          int
	contentMinRows       int
	contentMaxRows       int
	contentMinCols       int
	contentMaxCols       int
	contentValueType     string
	contentBanList       []string
	contentReport        string
	contentErrorLog      string
)

func init() {
	flags := contentCmd.Flags()
	flags.StringVarP(&contentOutDir, "out-dir", "o", "", "Directory for the preprocessed working copy (default: next to the input)")
	flags.StringVar(&contentNewName, "new-name", "", "Name of the working copy (default: input name with .checked appended)")
	flags.BoolVar(&contentNoPreprocess, "no-preprocess", false, "Check the input as is, without a working copy")
	flags.BoolVar(&contentKeepSpace, "keep-space", false, "Do not trim cells while preprocessing")
	flags.BoolVar(&contentCheckSep, "check-sep", false, "Check separator placement on every line")
	flags.BoolVar(&contentCheckHeader, "check-header", false, "Check that the header is not shorter than the data rows")
	flags.BoolVar(&contentCheckDupLines, "check-dup-lines", false, "Report repeated lines")
	flags.IntVar(&contentRows, "rows", 0, "Exact row count")
	flags.IntVar(&contentCols, "cols", 0, "Exact column count")
	flags.IntVar(&contentMinRows, "min-rows", 0, "Minimum row count")
	flags.IntVar(&contentMaxRows, "max-rows", 0, "Maximum row count")
	flags.IntVar(&contentMinCols, "min-cols", 0, "Minimum column count")
	flags.IntVar(&contentMaxCols, "max-cols", 0, "Maximum column count")
	flags.StringVar(&contentValueType, "value-type", "", "Value type of numeric checks: float, int, str or bool")
	flags.StringSliceVar(&contentBanList, "ban", nil, "Values banned from the first row and column")
	flags.StringVar(&contentReport, "report", "", "Write a JSON report to this path")
	flags.StringVar(&contentErrorLog, "error-log", "", "Write failing messages to this log file")

	rootCmd.AddCommand(contentCmd)
}

// contentOptions merges the profile with the command line flags.
func contentOptions(cmd *cobra.Command, input string) (validation.ContentOptions, error) {
	outDir := contentOutDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	opts, err := app.profile.ContentOptions(outDir, app.settings.NAMarkers)
	if err != nil {
		return validation.ContentOptions{}, err
	}

	flags := cmd.Flags()
	opts.NewName = contentNewName
	if opts.NewName == "" && !flags.Changed("out-dir") {
		opts.NewName = filepath.Base(input) + ".checked"
	}
	if contentNoPreprocess {
		opts.Preprocess = false
	}
	if flags.Changed("keep-space") {
		opts.KeepSpace = contentKeepSpace
		opts.Read.KeepSpace = contentKeepSpace
	}
	if flags.Changed("check-sep") {
		opts.CheckSeparators = contentCheckSep
	}
	if flags.Changed("check-header") {
		opts.CheckHeader = contentCheckHeader
	}
	if flags.Changed("check-dup-lines") {
		opts.CheckDuplicateLines = contentCheckDupLines
	}
	opts.Rows = dimensionFlags(cmd, opts.Rows, "rows", contentRows, contentMinRows, contentMaxRows)
	opts.Cols = dimensionFlags(cmd, opts.Cols, "cols", contentCols, contentMinCols, contentMaxCols)
	if contentValueType != "" {
		vt, err := validation.ParseValueType(contentValueType)
		if err != nil {
			return validation.ContentOptions{}, err
		}
		opts.ValueType = vt
	}
	if flags.Changed("ban") {
		opts.BanList = contentBanList
	}
	return opts, nil
}

// dimensionFlags overrides rule with the flags that were set.
func dimensionFlags(cmd *cobra.Command, rule validation.DimensionRule, name string, exact, lo, hi int) validation.DimensionRule {
	flags := cmd.Flags()
	if flags.Changed(name) {
		rule = validation.DimensionRule{Exact: &exact}
	}
	if flags.Changed("min-" + name) {
		rule.Exact = nil
		rule.Min = &lo
	}
	if flags.Changed("max-" + name) {
		rule.Exact = nil
		rule.Max = &hi
	}
	return rule
}

func runContent(cmd *cobra.Command, args []string) error {
	input := args[0]
	if _, err := os.Stat(input); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", input)
	}
	opts, err := contentOptions(cmd, input)
	if err != nil {
		return err
	}

	start := time.Now()
	file := validation.NewFile(app.ctx, input, app.sep).WithReadOptions(opts.Read)
	res := file.CheckContent(opts)
	app.logger.Debug("content checked", "file", input, "stage", res.Stage, "issues", len(res.Issues))

	if contentReport != "" {
		report := types.Report{
			File:       input,
			Passed:     res.OK(),
			Stage:      res.Stage,
			DurationMs: time.Since(start).Milliseconds(),
			Messages:   pipeline.Messages(app.ctx, res.Issues),
		}
		if opts.Preprocess {
			report.Output = res.Path
		}
		if err := writeReports(cmd, contentReport, []types.Report{report}); err != nil {
			return err
		}
	}
	if err := app.writeLog(contentErrorLog, res.Issues); err != nil {
		return err
	}
	return app.report(cmd.OutOrStdout(), filepath.Base(input), res.Issues)
}

// writeReports writes a JSON report for reports. A schema mismatch is only
// a warning.
func writeReports(cmd *cobra.Command, path string, reports []types.Report) error {
	doc := &types.Reports{
		RunID:     uuid.New().String(),
		Language:  string(app.ctx.Lang),
		Profile:   app.profile.Name,
		CreatedAt: time.Now().UTC(),
		Reports:   reports,
	}
	doc.Tally()
	return writeReportDoc(cmd, path, doc)
}

//nolint:errcheck // writing to stderr; errors are not recoverable
func writeReportDoc(cmd *cobra.Command, path string, doc *types.Reports) error {
	err := pipeline.WriteReports(path, doc)
	var validationErr *schemas.ValidationError
	var schemaLoadErr *schemas.SchemaLoadError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &validationErr):
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Generated report does not validate against schema: %v\n", err)
		return nil
	case errors.As(err, &schemaLoadErr):
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Could not validate report against schema (schema loading failed): %v\n", err)
		return nil
	}
	return err
}
