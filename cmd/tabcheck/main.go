// Package main provides the tabcheck command line tool, which validates
// delimited text files before they enter an analysis pipeline.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabcheck",
	Short: "Validate delimited data files",
	Long: "tabcheck checks tab or comma separated tables for encoding, layout, dimensions, " +
		"duplicate or missing values, fixed headers and numeric content, and reports every " +
		"problem in Chinese or English.",
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

var (
	rootLang      string
	rootQuiet     bool
	rootSep       string
	rootPrefix    string
	rootCatalog   string
	rootLogLevel  string
	rootLogFormat string
	rootProfile   string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootLang, "lang", "", "Message language, CN or EN (default from TABCHECK_LANG)")
	flags.BoolVarP(&rootQuiet, "quiet", "q", false, "Do not trace individual checks")
	flags.StringVarP(&rootSep, "sep", "s", `\t`, "Field separator")
	flags.StringVar(&rootPrefix, "prefix", "", "Text prepended to every message")
	flags.StringVar(&rootCatalog, "catalog", "", "Path to a message catalog YAML overriding the embedded one")
	flags.StringVar(&rootLogLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&rootLogFormat, "log-format", "", "Log format: text or json")
	flags.StringVarP(&rootProfile, "profile", "p", "", "Path to a JSON check profile")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
