package main

import (
	"encoding/json"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/chart"
	"github.com/sells-group/census-dash/internal/dashboard"
	"github.com/sells-group/census-dash/internal/render"
	"github.com/sells-group/census-dash/internal/scope"
	"github.com/sells-group/census-dash/internal/selection"
)

var (
	renderScope     string
	renderPrimary   string
	renderSecondary string
	renderChart     string
	renderFormat    string
	renderOut       string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one chart to a file or stdout",
	Example: `  census-dash render --scope Kerala --chart bar --primary Population --secondary "Sex Ratio" --out kerala.svg
  census-dash render --chart mapbox --format html --out india.html
  census-dash render --scope Goa --chart pie --format yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := loadFrame(cmd, "render")
		if err != nil {
			return err
		}

		values := url.Values{}
		values.Set(selection.FieldScope, renderScope)
		values.Set(selection.FieldPrimary, renderPrimary)
		values.Set(selection.FieldSecondary, renderSecondary)
		values.Set(selection.FieldChart, renderChart)
		values.Set(selection.FieldPlot, "1")

		format := renderFormat
		if format == "" {
			format = formatFromPath(renderOut)
		}

		out, closeOut, err := openOutput(cmd.OutOrStdout(), renderOut)
		if err != nil {
			return err
		}
		defer closeOut()

		err = renderPass(out, frame, values, format, serverOptions(cfg))
		if err != nil {
			return err
		}
		if renderOut != "" {
			zap.L().Info("chart written", zap.String("path", renderOut), zap.String("format", format))
		}
		return nil
	},
}

// renderPass runs one cycle for values and writes it in format.
func renderPass(w io.Writer, frame *census.Frame, values url.Values, format string, opts dashboard.Options) error {
	sel, err := selection.FromValues(values, selection.BuildOptions(frame))
	if err != nil {
		return err
	}
	if sel.Chart == chart.None && format != "json" && format != "yaml" {
		return eris.New("render: choose a chart type with --chart")
	}
	pass := dashboard.Cycle{Frame: frame, Selection: sel, Dispatcher: opts.Dispatcher}.Run()

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pass); err != nil {
			return eris.Wrap(err, "render: encode json")
		}
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pass); err != nil {
			return eris.Wrap(err, "render: encode yaml")
		}
		if err := enc.Close(); err != nil {
			return eris.Wrap(err, "render: encode yaml")
		}
		return nil
	}

	if pass.Result.Warning != "" {
		return eris.Errorf("render: %s", pass.Result.Warning)
	}
	fig := pass.Result.Figure

	var data []byte
	switch format {
	case "svg":
		data, err = render.SVG(fig, opts.Render)
	case "geojson":
		if sel.Chart != chart.Mapbox {
			return eris.New("render: geojson needs --chart mapbox")
		}
		data, err = render.GeoJSON(fig)
	case "html":
		if sel.Chart != chart.Mapbox {
			return eris.New("render: html needs --chart mapbox")
		}
		data, err = render.MapPage(fig, opts.Render)
	default:
		return eris.Errorf("render: unknown format %q (want svg, geojson, html, json or yaml)", format)
	}
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return eris.Wrap(err, "render: write output")
	}
	return nil
}

// openOutput returns path opened for writing, or stdout when path is empty.
func openOutput(stdout io.Writer, path string) (io.Writer, func(), error) {
	if path == "" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "create %s", path)
	}
	return f, func() { _ = f.Close() }, nil
}

// formatFromPath guesses the render format from the output extension.
func formatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".geojson"):
		return "geojson"
	case strings.HasSuffix(path, ".html"):
		return "html"
	case strings.HasSuffix(path, ".json"):
		return "json"
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "yaml"
	}
	return "svg"
}

func init() {
	renderCmd.Flags().StringVar(&renderScope, "scope", scope.Overall, "state name, or the whole country")
	renderCmd.Flags().StringVar(&renderPrimary, "primary", string(census.Population), "primary metric")
	renderCmd.Flags().StringVar(&renderSecondary, "secondary", string(census.Population), "secondary metric")
	renderCmd.Flags().StringVar(&renderChart, "chart", "bar", "chart type: bar, line, pie, histogram or mapbox")
	renderCmd.Flags().StringVar(&renderFormat, "format", "", "svg, geojson, html, json or yaml (default from --out extension, else svg)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(renderCmd)
}
