package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/charset"
)

var detectCmd = &cobra.Command{
	Use:   "detect FILE...",
	Short: "Print the detected encoding of files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDetect,
}

var detectDetector string

func init() {
	detectCmd.Flags().StringVar(&detectDetector, "detector", "", "Encoding detector: utility or content (default from profile)")

	rootCmd.AddCommand(detectCmd)
}

func detector() charset.Detector {
	name := detectDetector
	if name == "" {
		name = app.profile.Base.Detector
	}
	if name == "content" {
		return charset.NewContentDetector()
	}
	return charset.NewUtilityDetector()
}

func runDetect(cmd *cobra.Command, args []string) error {
	d := detector()
	w := cmd.OutOrStdout()
	failed := false
	for _, path := range args {
		name := filepath.Base(path)
		if !fileExists(path) {
			return &os.PathError{Op: "detect", Path: path, Err: os.ErrNotExist}
		}
		enc, err := d.Detect(path)
		switch {
		case err != nil:
			return err
		case enc == charset.Unknown:
			app.say(w, "unknown_encoding", map[string]string{"File": name})
			failed = true
		case enc == "":
			app.say(w, "binary", map[string]string{"File": name})
		default:
			app.say(w, "encoding", map[string]string{"File": name, "Encoding": enc})
		}
	}
	if failed {
		return errChecksFailed
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
