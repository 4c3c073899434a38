package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/tabcheck/internal/charset"
	"github.com/jonathan/tabcheck/internal/sheet"
	"github.com/jonathan/tabcheck/internal/validation"
)

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Re-encode a text file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var (
	convertFrom string
	convertTo   string
	convertOut  string
)

var xlsxCmd = &cobra.Command{
	Use:   "xlsx2txt FILE",
	Short: "Convert a spreadsheet sheet to delimited text",
	Long: "Writes one sheet of an xlsx workbook as text using the root separator. Rows are " +
		"padded to the widest row and missing values are replaced.",
	Args: cobra.ExactArgs(1),
	RunE: runXLSX,
}

var (
	xlsxOut      string
	xlsxSheet    int
	xlsxNAValues []string
	xlsxNARep    string
)

func init() {
	convertCmd.Flags().StringVar(&convertFrom, "from", "", "Source encoding (default: detected)")
	convertCmd.Flags().StringVar(&convertTo, "to", "UTF-8", "Target encoding")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "Output path (default: input with .convert appended; the input path replaces it)")

	xlsxCmd.Flags().StringVarP(&xlsxOut, "out", "o", "", "Output path (default: input with a .txt extension)")
	xlsxCmd.Flags().IntVar(&xlsxSheet, "sheet", 1, "1-based sheet index")
	xlsxCmd.Flags().StringSliceVar(&xlsxNAValues, "na-values", nil, "Cell values treated as missing")
	xlsxCmd.Flags().StringVar(&xlsxNARep, "na-rep", "", "Replacement for missing values")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(xlsxCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	file := validation.NewFile(app.ctx, input, app.sep)
	if issue := file.Exist(); issue != nil {
		return app.report(cmd.OutOrStdout(), filepath.Base(input), validation.Issues{issue})
	}

	from := convertFrom
	if from == "" {
		enc, err := detector().Detect(input)
		if err != nil {
			return err
		}
		if enc == "" || enc == charset.Unknown {
			return fmt.Errorf("cannot detect the encoding of %s, pass --from", input)
		}
		from = enc
	}

	if issue := file.Convert(from, convertTo, convertOut); issue != nil {
		return app.report(cmd.OutOrStdout(), filepath.Base(input), validation.Issues{issue})
	}
	out := convertOut
	if out == "" {
		out = charset.DefaultOutput(input)
	}
	app.say(cmd.OutOrStdout(), "written", map[string]string{"File": out})
	return nil
}

func runXLSX(cmd *cobra.Command, args []string) error {
	input := args[0]
	file := validation.NewFile(app.ctx, input, app.sep)
	if issue := file.Exist(); issue != nil {
		return app.report(cmd.OutOrStdout(), filepath.Base(input), validation.Issues{issue})
	}

	out, issue := file.XLSX(xlsxOut, sheet.Options{
		Sheet:    xlsxSheet,
		Sep:      app.sep,
		NAValues: xlsxNAValues,
		NARep:    xlsxNARep,
	})
	if issue != nil {
		return app.report(cmd.OutOrStdout(), filepath.Base(input), validation.Issues{issue})
	}
	app.say(cmd.OutOrStdout(), "written", map[string]string{"File": out})
	return nil
}
