package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/charset"
	"github.com/jonathan/tabcheck/internal/validation"
)

var baseCmd = &cobra.Command{
	Use:   "base FILE",
	Short: "Check that a file exists, has an accepted suffix, size and encoding",
	Long: "Runs the basic file checks. When exactly one encoding is accepted the file is " +
		"converted from its detected encoding so that later steps can read the output.",
	Args: cobra.ExactArgs(1),
	RunE: runBase,
}

var (
	baseSuffixes    []string
	baseMaxSize     string
	baseEncodings   []string
	baseOut         string
	baseOutEncoding string
	baseNoConvert   bool
	baseSkip        []string
	baseDetector    string
	baseErrorLog    string
)

func init() {
	flags := baseCmd.Flags()
	flags.StringSliceVar(&baseSuffixes, "suffix", nil, "Accepted file suffixes (default txt)")
	flags.StringVar(&baseMaxSize, "max-size", "", "Maximum file size such as 500K or 50M (default 50M)")
	flags.StringSliceVar(&baseEncodings, "encoding", nil, "Accepted encodings (default UTF-8)")
	flags.StringVarP(&baseOut, "out", "o", "", "Path of the converted file (default: input with .convert appended)")
	flags.StringVar(&baseOutEncoding, "out-encoding", "", "Encoding to convert to (default UTF-8)")
	flags.BoolVar(&baseNoConvert, "no-convert", false, "Report a disallowed encoding instead of converting")
	flags.StringSliceVar(&baseSkip, "skip", nil, "Checks to skip: exist, suffix, empty, size, encoding")
	flags.StringVar(&baseDetector, "detector", "", "Encoding detector: utility or content")
	flags.StringVar(&baseErrorLog, "error-log", "", "Write failing messages to this log file")

	rootCmd.AddCommand(baseCmd)
}

// baseOptions merges the profile with the command line flags.
func baseOptions(cmd *cobra.Command) (validation.BaseOptions, error) {
	p := *app.profile
	flags := cmd.Flags()
	if flags.Changed("suffix") {
		p.Base.Suffixes = baseSuffixes
	}
	if baseMaxSize != "" {
		p.Base.MaxSize = baseMaxSize
	}
	if flags.Changed("encoding") {
		p.Base.Encodings = baseEncodings
	}
	if baseOutEncoding != "" {
		p.Base.OutEncoding = baseOutEncoding
	}
	if flags.Changed("no-convert") {
		p.Base.NoConvert = baseNoConvert
	}
	if flags.Changed("skip") {
		p.Base.Skip = baseSkip
	}
	if baseDetector != "" {
		p.Base.Detector = baseDetector
	}
	if err := p.Validate(); err != nil {
		return validation.BaseOptions{}, err
	}
	return p.BaseOptions(baseOut)
}

func runBase(cmd *cobra.Command, args []string) error {
	input := args[0]
	opts, err := baseOptions(cmd)
	if err != nil {
		return err
	}

	issues := validation.NewFile(app.ctx, input, app.sep).CheckBase(opts)
	if err := app.writeLog(baseErrorLog, issues); err != nil {
		return err
	}
	if err := app.report(cmd.OutOrStdout(), filepath.Base(input), issues); err != nil {
		return err
	}

	out := opts.Out
	if out == "" {
		out = charset.DefaultOutput(input)
	}
	if !opts.SkipEncoding && !opts.NoConvert && len(opts.Allowed) <= 1 && fileExists(out) {
		app.say(cmd.OutOrStdout(), "written", map[string]string{"File": out})
	}
	return nil
}
