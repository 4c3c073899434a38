package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog [COMPONENT...]",
	Short: "Print the message catalog in the selected language",
	Long: "Prints every message template, or those of the named components. The catalog " +
		"has already been checked for completeness when this command runs, so a custom " +
		"--catalog file can be validated by listing it.",
	RunE: runCatalog,
}

var catalogFormat string

func init() {
	catalogCmd.Flags().StringVar(&catalogFormat, "format", "text", "Output format: text or yaml")

	rootCmd.AddCommand(catalogCmd)
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func runCatalog(cmd *cobra.Command, args []string) error {
	cat, lang := app.ctx.Catalog, app.ctx.Lang
	components := args
	if len(components) == 0 {
		components = cat.Components(lang)
	}

	entries := make(map[string]map[string]string, len(components))
	for _, component := range components {
		keys := cat.Keys(lang, component)
		if len(keys) == 0 {
			return fmt.Errorf("unknown catalog component %q", component)
		}
		entries[component] = make(map[string]string, len(keys))
		for _, key := range keys {
			entries[component][key] = cat.MustGet(lang, component, key)
		}
	}

	w := cmd.OutOrStdout()
	switch catalogFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]any{string(lang): entries}); err != nil {
			return fmt.Errorf("failed to encode catalog: %w", err)
		}
		return enc.Close()
	case "text":
		for _, component := range components {
			for _, key := range cat.Keys(lang, component) {
				fmt.Fprintf(w, "%s.%s: %s\n", component, key, entries[component][key])
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q: expected text or yaml", catalogFormat)
}
