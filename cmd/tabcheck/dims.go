package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/validation"
)

var dimsCmd = &cobra.Command{
	Use:   "dims FILE",
	Short: "Print and check the row and column counts of a table",
	Long: "Prints the number of rows and columns. --rows and --cols check exact counts; " +
		"--relation checks the row count against the column count.",
	Args: cobra.ExactArgs(1),
	RunE: runDims,
}

var (
	dimsRows     int
	dimsCols     int
	dimsRelation string
	dimsCompare  bool
)

func init() {
	dimsCmd.Flags().IntVar(&dimsRows, "rows", 0, "Exact row count")
	dimsCmd.Flags().IntVar(&dimsCols, "cols", 0, "Exact column count")
	dimsCmd.Flags().StringVar(&dimsRelation, "relation", "", "Required relation of rows to columns: gt, ge, lt or le")
	dimsCmd.Flags().BoolVar(&dimsCompare, "compare", false, "Describe whether rows or columns are more numerous")

	rootCmd.AddCommand(dimsCmd)
}

// parseRelation maps gt, ge, lt and le to a Relation.
func parseRelation(s string) (*validation.Relation, error) {
	switch s {
	case "gt":
		return &validation.Relation{RowGreater: true}, nil
	case "ge":
		return &validation.Relation{RowGreater: true, OrEqual: true}, nil
	case "lt":
		return &validation.Relation{}, nil
	case "le":
		return &validation.Relation{OrEqual: true}, nil
	}
	return nil, fmt.Errorf("unknown relation %q: expected gt, ge, lt or le", s)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runDims(cmd *cobra.Command, args []string) error {
	input := args[0]
	name := filepath.Base(input)
	file := validation.NewFile(app.ctx, input, app.sep)
	if issue := file.Exist(); issue != nil {
		return app.report(cmd.OutOrStdout(), name, validation.Issues{issue})
	}

	dims, err := file.Table().Dimensions()
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", input, err)
	}
	w := cmd.OutOrStdout()
	app.say(w, "dims", map[string]string{
		"File": name,
		"Rows": strconv.Itoa(dims.Rows),
		"Cols": strconv.Itoa(dims.Cols),
	})
	if dimsCompare {
		fmt.Fprintln(w, app.ctx.Message(file.CompareDimensions(nil)))
	}

	var rows, cols *int
	if cmd.Flags().Changed("rows") {
		rows = &dimsRows
	}
	if cmd.Flags().Changed("cols") {
		cols = &dimsCols
	}
	var issues validation.Issues
	if rows != nil || cols != nil {
		issues.Extend(file.CheckDimensions(rows, cols))
	}
	if dimsRelation != "" {
		rel, err := parseRelation(dimsRelation)
		if err != nil {
			return err
		}
		issues.Add(file.CompareDimensions(rel))
	}
	if issues.OK() && rows == nil && cols == nil && dimsRelation == "" {
		return nil
	}
	return app.report(w, name, issues)
}
