package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/census-dash/internal/census"
	"github.com/sells-group/census-dash/internal/config"
	"github.com/sells-group/census-dash/internal/dataset"
)

var (
	cfg      *config.Config
	dataPath string
)

var rootCmd = &cobra.Command{
	Use:   "census-dash",
	Short: "Interactive census data dashboard",
	Long:  "Loads a district-level census file, derives sex ratio and literacy rates, and charts them by state or district over HTTP or from the command line.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dataPath != "" {
			c.Dataset.Path = dataPath
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// stdinPath as the dataset path reads delimited text from standard input.
const stdinPath = "-"

// loadFrame validates the config for mode and loads the dataset it names.
func loadFrame(cmd *cobra.Command, mode string) (*census.Frame, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}
	opts := dataset.Options{
		Delimiter: cfg.Dataset.DelimiterRune(),
		Encoding:  cfg.Dataset.Encoding,
		Sheet:     cfg.Dataset.Sheet,
	}
	if cfg.Dataset.Path == stdinPath {
		return dataset.Read(cmd.Context(), cmd.InOrStdin(), opts)
	}
	return dataset.Load(cmd.Context(), cfg.Dataset.Path, opts)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset file, or - for CSV on stdin (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
