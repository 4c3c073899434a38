package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/validation"
	"github.com/jonathan/tabcheck/internal/workspace"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold DIR",
	Short: "Create the result directory tree of an analysis step",
	Long: "Creates DIR/tmp with cloud_result, cloud_error, cloud_svg and the analysis " +
		"directories, optionally emptying them and copying input files into DIR/tmp.",
	Args: cobra.ExactArgs(1),
	RunE: runScaffold,
}

var (
	scaffoldClean    bool
	scaffoldAnalysis []string
	scaffoldCopy     []string
)

var packCmd = &cobra.Command{
	Use:   "pack DIR",
	Short: "Zip analysis results into the result tree",
	Long: "Zips entries of DIR into DIR/<zip>, copies the archive into OUT/tmp/cloud_result " +
		"and the JSON result file into OUT/tmp/cloud_svg. --expect first checks that the " +
		"expected results exist.",
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

var (
	packOut        string
	packItems      []string
	packZip        string
	packJSON       string
	packExpect     []string
	packCheckEmpty bool
	packErrorLog   string
)

func init() {
	scaffoldCmd.Flags().BoolVar(&scaffoldClean, "clean", false, "Empty existing directories")
	scaffoldCmd.Flags().StringSliceVar(&scaffoldAnalysis, "analysis", nil, "Analysis directory names (default analysis)")
	scaffoldCmd.Flags().StringSliceVar(&scaffoldCopy, "copy", nil, "Files to copy into DIR/tmp")

	packCmd.Flags().StringVarP(&packOut, "out", "o", "", "Root of the result tree (required)")
	packCmd.Flags().StringSliceVar(&packItems, "items", nil, "Entries of DIR to pack (default all)")
	packCmd.Flags().StringVar(&packZip, "zip", workspace.DefaultZip, "Archive name")
	packCmd.Flags().StringVar(&packJSON, "json", "", "JSON result file copied instead of packed")
	packCmd.Flags().StringSliceVar(&packExpect, "expect", nil, "Entries DIR must contain")
	packCmd.Flags().BoolVar(&packCheckEmpty, "check-empty", false, "Fail when an expected file is empty")
	packCmd.Flags().StringVar(&packErrorLog, "error-log", "", "Write failing messages to this log file")

	if err := packCmd.MarkFlagRequired("out"); err != nil {
		panic("failed to mark out flag as required: " + err.Error())
	}

	rootCmd.AddCommand(scaffoldCmd)
	rootCmd.AddCommand(packCmd)
}

func newTools() *workspace.Tools {
	return workspace.New(app.ctx)
}

func runScaffold(cmd *cobra.Command, args []string) error {
	dir := args[0]
	tools := newTools()

	var issues validation.Issues
	issues.Add(tools.MakeResultTree(dir, scaffoldClean, scaffoldAnalysis...))
	if issues.OK() {
		for _, in := range scaffoldCopy {
			issues.Add(tools.CopyFile(in, filepath.Join(dir, workspace.TmpDir), ""))
		}
	}
	return app.report(cmd.OutOrStdout(), dir, issues)
}

func runPack(cmd *cobra.Command, args []string) error {
	dir := args[0]
	tools := newTools()

	var issues validation.Issues
	if packExpect != nil {
		issues.Add(tools.CheckDirItems(dir, packExpect, packCheckEmpty))
	}
	if issues.OK() {
		issues.Extend(tools.MakeResult(dir, packOut, workspace.ResultOptions{
			Items: packItems,
			Zip:   packZip,
			JSON:  packJSON,
		}))
	}
	if err := app.writeLog(packErrorLog, issues); err != nil {
		return err
	}
	if err := app.report(cmd.OutOrStdout(), dir, issues); err != nil {
		return err
	}
	app.say(cmd.OutOrStdout(), "written", map[string]string{
		"File": filepath.Join(packOut, workspace.TmpDir, workspace.ResultDir, filepath.Base(packZip)),
	})
	return nil
}
