package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/census-dash/internal/selection"
)

var optionsFormat string

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the selectable states, metrics and chart types",
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := loadFrame(cmd, "options")
		if err != nil {
			return err
		}
		return writeOptions(cmd.OutOrStdout(), selection.BuildOptions(frame), optionsFormat)
	},
}

func writeOptions(w io.Writer, opts selection.Options, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(opts); err != nil {
			return eris.Wrap(err, "options: encode json")
		}
	case "yaml":
		if err := yaml.NewEncoder(w).Encode(opts); err != nil {
			return eris.Wrap(err, "options: encode yaml")
		}
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "KIND\tVALUE\tFLAG")
		for _, s := range opts.States {
			_, _ = fmt.Fprintf(tw, "scope\t%s\t%s\n", s, s)
		}
		for _, m := range opts.Metrics {
			_, _ = fmt.Fprintf(tw, "metric\t%s\t%s\n", m, m)
		}
		for _, k := range opts.Charts {
			_, _ = fmt.Fprintf(tw, "chart\t%s\t%s\n", k, k.Slug())
		}
		if err := tw.Flush(); err != nil {
			return eris.Wrap(err, "options: write")
		}
	default:
		return eris.Errorf("options: unknown format %q (want text, json or yaml)", format)
	}
	return nil
}

func init() {
	optionsCmd.Flags().StringVar(&optionsFormat, "format", "text", "text, json or yaml")
	rootCmd.AddCommand(optionsCmd)
}
