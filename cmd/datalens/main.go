package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"datalens/api"
	"datalens/internal/analyze"
	"datalens/internal/config"
	"datalens/internal/loader"
	"datalens/internal/logging"
	"datalens/internal/render"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	log := logging.Setup(cfg.LogLevel)

	root := &cobra.Command{
		Use:   "datalens",
		Short: "Automatic exploratory analysis for tabular data files",
	}
	root.AddCommand(analyzeCmd(cfg, log), serveCmd(cfg, log))

	if err := root.Execute(); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func analyzeCmd(cfg *config.Config, log *logrus.Logger) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a data file and print the report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			l := loader.New(loader.CoerceConfig{
				NumericThreshold:  cfg.Loader.NumericThreshold,
				DatetimeThreshold: cfg.Loader.DatetimeThreshold,
			})
			tbl, err := l.Read(content, path)
			if err != nil {
				return err
			}

			analysisCfg := analyze.DefaultConfig()
			analysisCfg.PatternSampleSize = cfg.Analysis.PatternSampleSize
			analysisCfg.MinHistogramBins = cfg.Analysis.MinHistogramBins
			analysisCfg.MaxHistogramBins = cfg.Analysis.MaxHistogramBins
			analysisCfg.MaxTimelineBuckets = cfg.Analysis.MaxTimelineBuckets
			if cfg.Analysis.Workers > 0 {
				analysisCfg.Workers = cfg.Analysis.Workers
			}
			rep, err := analyze.New(analysisCfg).AnalyzeAll(tbl)
			if err != nil {
				return err
			}

			var out []byte
			switch format {
			case "json":
				out, err = json.MarshalIndent(rep, "", "  ")
				if err != nil {
					return err
				}
			case "markdown":
				out = []byte(render.Markdown(filepath.Base(path), rep))
			case "html":
				out = []byte(render.HTML(filepath.Base(path), rep))
			default:
				return fmt.Errorf("unknown format %q (want json, markdown or html)", format)
			}

			if output != "" {
				return os.WriteFile(output, out, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, markdown or html")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")
	return cmd
}

func serveCmd(cfg *config.Config, log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := api.NewServer(cfg, log)
			if err != nil {
				return err
			}
			return srv.ListenAndServe()
		},
	}
}
