package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/export"
	"github.com/sells-group/census-dash/internal/scope"
	"github.com/sells-group/census-dash/internal/selection"
)

var (
	exportScope  string
	exportOut    string
	exportFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the working table of a scope as CSV, XLSX or a point shapefile",
	Example: `  census-dash export --out states.csv
  census-dash export --scope Kerala --out kerala.shp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if exportOut == "" {
			return eris.New("export: --out is required")
		}
		frame, err := loadFrame(cmd, "export")
		if err != nil {
			return err
		}
		return exportScopeTable(frame, exportScope, exportOut, exportFormat)
	},
}

// exportScopeTable writes the working table of scopeName to path.
func exportScopeTable(frame *census.Frame, scopeName, path, format string) error {
	if !selection.BuildOptions(frame).HasState(scopeName) {
		return eris.Errorf("export: unknown scope %q", scopeName)
	}

	var (
		f   export.Format
		err error
	)
	if format == "" {
		f, err = export.FormatFor(path)
	} else {
		f, err = export.ParseFormat(format)
	}
	if err != nil {
		return err
	}

	w := scope.Compute(frame, scopeName)
	if err := export.File(path, w.Frame, f); err != nil {
		return err
	}

	zap.L().Info("working table exported",
		zap.String("scope", scopeName),
		zap.String("path", path),
		zap.Int("rows", w.Frame.Len()),
	)
	return nil
}

func init() {
	exportCmd.Flags().StringVar(&exportScope, "scope", scope.Overall, "state name, or the whole country")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "csv, xlsx or shp (default from --out extension)")
	rootCmd.AddCommand(exportCmd)
}
