package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/validation"
)

var compareCmd = &cobra.Command{
	Use:   "compare FILE OTHER",
	Short: "Compare a row or column of one table with a row or column of another",
	Long: "Compares the selected lines as sets by default. --ordered compares position by " +
		"position and --subset only asks whether the first line is contained in the second.",
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

var (
	compareAxis       string
	compareIndex      int
	compareOtherAxis  string
	compareOtherIndex int
	compareDropFirst  bool
	compareOrdered    bool
	compareSubset     bool
	compareNoun       string
	compareContains   []string
)

func init() {
	flags := compareCmd.Flags()
	flags.StringVar(&compareAxis, "axis", "row", "Axis of the first file: row or col")
	flags.IntVar(&compareIndex, "index", 1, "1-based line index in the first file")
	flags.StringVar(&compareOtherAxis, "other-axis", "row", "Axis of the second file: row or col")
	flags.IntVar(&compareOtherIndex, "other-index", 1, "1-based line index in the second file")
	flags.BoolVar(&compareDropFirst, "drop-first", false, "Ignore the leading header cell of both lines")
	flags.BoolVar(&compareOrdered, "ordered", false, "Compare position by position")
	flags.BoolVar(&compareSubset, "subset", false, "Only require the first line to be contained in the second")
	flags.StringVar(&compareNoun, "noun", "", "Name of the compared elements in messages")
	flags.StringSliceVar(&compareContains, "contains", nil, "Also require these values in the first file's line")

	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	input, other := args[0], args[1]
	axis, err := validation.ParseAxis(compareAxis)
	if err != nil {
		return err
	}
	otherAxis, err := validation.ParseAxis(compareOtherAxis)
	if err != nil {
		return err
	}

	file := validation.NewFile(app.ctx, input, app.sep)
	if issue := file.Exist(); issue != nil {
		return app.report(cmd.OutOrStdout(), filepath.Base(input), validation.Issues{issue})
	}

	var issues validation.Issues
	issues.Add(file.CompareLines(other, validation.CompareLinesOptions{
		Axis:       axis,
		Index:      compareIndex,
		OtherAxis:  otherAxis,
		OtherIndex: compareOtherIndex,
		DropFirst:  compareDropFirst,
		Noun:       compareNoun,
		Compare: validation.CompareOptions{
			OrderStrict: compareOrdered,
			SubsetOnly:  compareSubset,
		},
	}))
	if len(compareContains) > 0 {
		row, col := compareIndex, 0
		if axis == validation.AxisCol {
			row, col = 0, compareIndex
		}
		issues.Extend(file.ContainsAll(compareContains, row, col))
	}
	return app.report(cmd.OutOrStdout(), filepath.Base(input), issues)
}
