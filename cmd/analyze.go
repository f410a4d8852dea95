package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/peekknuf/studentqa/internal/config"
	"github.com/peekknuf/studentqa/internal/connectors"
	"github.com/peekknuf/studentqa/internal/dataset"
	"github.com/peekknuf/studentqa/internal/render"
	"github.com/peekknuf/studentqa/internal/report"
)

var (
	analyzeDir        string
	analyzeRecursive  bool
	analyzeShowPlots  bool
	analyzeSavePlots  bool
	analyzeSaveTables bool
	analyzeOut        string
	analyzeFormat     string
	analyzeDelimiter  string
	analyzeMinSize    int64
	analyzeMaxSize    int64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file.csv]",
	Short: "Run the data quality & bias report",
	Long: `Run the full data quality and bias report on a student
performance CSV (or every CSV in a directory).

Examples:
  studentqa analyze student-mat.csv                  # Single file
  studentqa analyze --dir data/ --recursive          # All CSVs under data/
  studentqa analyze student-por.csv --format yaml    # Machine-readable report
  studentqa analyze --save-tables --save-plots --out results/`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadAnalyzeConfig(cmd)
		if err != nil {
			logger.Fatalf("Invalid configuration: %v", err)
		}

		if analyzeDir != "" {
			analyzeDirectory(cfg, analyzeDir)
			return
		}

		path := cfg.DataFile
		if len(args) == 1 {
			path = args[0]
		}
		if err := analyzeFile(cfg, path); err != nil {
			logger.Fatalf("Analysis of %s failed: %v", path, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeDir, "dir", "d", "",
		"Analyze every CSV file in this directory instead of a single file")
	analyzeCmd.Flags().BoolVarP(&analyzeRecursive, "recursive", "r", false,
		"Search directories recursively")
	analyzeCmd.Flags().BoolVar(&analyzeShowPlots, "show-plots", false,
		"Render ASCII histograms to the terminal")
	analyzeCmd.Flags().BoolVar(&analyzeSavePlots, "save-plots", false,
		"Save histogram and bar chart PNGs")
	analyzeCmd.Flags().BoolVar(&analyzeSaveTables, "save-tables", false,
		"Save summary tables as CSV files")
	analyzeCmd.Flags().StringVar(&analyzeOut, "out", "",
		"Output directory for saved plots and tables")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "",
		"Report format (text, yaml)")
	analyzeCmd.Flags().StringVar(&analyzeDelimiter, "delimiter", "",
		"CSV field delimiter (default from config, usually ';')")
	analyzeCmd.Flags().Int64Var(&analyzeMinSize, "min-size", 0,
		"Minimum file size in bytes (directory mode)")
	analyzeCmd.Flags().Int64Var(&analyzeMaxSize, "max-size", 0,
		"Maximum file size in bytes (directory mode)")
}

// loadAnalyzeConfig layers explicit flags over the loaded configuration.
func loadAnalyzeConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("show-plots") {
		cfg.ShowPlots = analyzeShowPlots
	}
	if cmd.Flags().Changed("save-plots") {
		cfg.SavePlots = analyzeSavePlots
	}
	if cmd.Flags().Changed("save-tables") {
		cfg.SaveTables = analyzeSaveTables
	}
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = analyzeOut
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = analyzeFormat
	}
	if cmd.Flags().Changed("delimiter") {
		cfg.Delimiter = analyzeDelimiter
	}
	if _, err := cfg.DelimiterRune(); err != nil {
		return nil, err
	}
	switch cfg.Format {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown report format %q", cfg.Format)
	}
	return cfg, nil
}

func analyzeFile(cfg *config.Config, path string) error {
	delim, err := cfg.DelimiterRune()
	if err != nil {
		return err
	}

	start := time.Now()
	ds, err := dataset.Load(path, delim)
	if err != nil {
		return err
	}
	logger.Debugw("dataset loaded",
		"file", path, "rows", ds.DF.Nrow(), "columns", ds.DF.Ncol())

	rep := report.Run(ds)

	switch cfg.Format {
	case "yaml":
		if err := render.YAML(os.Stdout, rep); err != nil {
			return err
		}
	default:
		render.Text(os.Stdout, rep)
	}

	if cfg.ShowPlots {
		render.ShowHistograms(os.Stdout, ds)
	}
	if cfg.SavePlots {
		paths, err := render.SavePlots(ds, cfg.OutputDir)
		if err != nil {
			return err
		}
		logger.Debugw("plots saved", "count", len(paths), "dir", cfg.OutputDir)
	}
	if cfg.SaveTables {
		paths, err := render.Tables(rep, cfg.OutputDir)
		if err != nil {
			return err
		}
		logger.Debugw("tables saved", "count", len(paths), "dir", cfg.OutputDir)
	}

	logger.Debugw("analysis complete", "file", path, "elapsed", time.Since(start))
	return nil
}

func analyzeDirectory(cfg *config.Config, dir string) {
	options := connectors.DiscoveryOptions{
		Recursive: analyzeRecursive,
		MinSize:   analyzeMinSize,
		MaxSize:   analyzeMaxSize,
	}
	files, err := connectors.DiscoverCSVFiles(dir, options)
	if err != nil {
		logger.Fatalf("Discovery failed: %v", err)
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Analyzing files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)

	failed := 0
	for _, file := range files {
		if err := analyzeFile(cfg, file.Path); err != nil {
			logger.Errorw("analysis failed", "file", file.Path, "error", err)
			failed++
		}
		bar.Add(1)
	}
	bar.Finish()

	if failed > 0 {
		logger.Warnw("some files failed", "failed", failed, "total", len(files))
	}
}
