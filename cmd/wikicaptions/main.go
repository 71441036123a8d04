package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/wikicaptions/internal/config"
	"github.com/IshaanNene/wikicaptions/internal/engine"
	"github.com/IshaanNene/wikicaptions/internal/fetcher"
	"github.com/IshaanNene/wikicaptions/internal/observability"
	"github.com/IshaanNene/wikicaptions/internal/output"
	"github.com/IshaanNene/wikicaptions/internal/parser"
	"github.com/IshaanNene/wikicaptions/internal/pipeline"
)

// options holds the command-line flag values.
type options struct {
	cfgFile         string
	verbose         bool
	lang            string
	page            string
	count           int
	ignoreTemplates bool
	output          string
	concurrency     int
	userAgent       string
	rateLimit       float64
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "wikicaptions",
		Short: "Sample wiki pages and analyze image captions",
		Long: `wikicaptions samples wiki articles, fetches their Parsoid HTML and reports
every embedded image: caption, alt text, dimensions, link, and whether it
comes from a template or from Commons.

Examples:
  wikicaptions --lang en -n 20
  wikicaptions --lang fr --page "Tour Eiffel" --output csv
  wikicaptions --lang de -n 500 --ignore-templates --output csv-headless >> captions.csv`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCaptions(cmd, opts, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	flags := rootCmd.Flags()
	flags.StringVar(&opts.lang, "lang", "", "wiki language code (e.g. en, fr)")
	flags.StringVar(&opts.page, "page", "", "page title; when omitted pages are sampled at random")
	flags.IntVarP(&opts.count, "count", "n", 100, "number of pages to sample")
	flags.BoolVar(&opts.ignoreTemplates, "ignore-templates", false, "ignore images coming from templates")
	flags.StringVar(&opts.output, "output", config.OutputPrint, "output format: print, csv, csv-headless")
	flags.IntVar(&opts.concurrency, "concurrency", 1, "pages fetched in parallel")
	flags.StringVar(&opts.userAgent, "user-agent", "", "custom User-Agent string")
	flags.Float64Var(&opts.rateLimit, "rate-limit", 0, "max requests per second (0 = unlimited)")
	_ = rootCmd.MarkFlagRequired("lang")

	rootCmd.AddCommand(versionCmd(stdout))
	rootCmd.AddCommand(configCmd(opts, stdout))

	return rootCmd
}

// runCaptions executes the sampling run.
func runCaptions(cmd *cobra.Command, opts *options, stdout, stderr io.Writer) error {
	cfg, err := config.Load(opts.cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cmd, opts, cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg, opts.verbose, stderr)

	renderer, err := output.NewRenderer(cfg.Run.Output, stdout)
	if err != nil {
		return err
	}

	logger.Info("starting run",
		"lang", cfg.Run.Lang,
		"page", cfg.Run.Page,
		"count", cfg.Run.Count,
		"ignore_templates", cfg.Run.IgnoreTemplates,
		"output", cfg.Run.Output,
		"concurrency", cfg.Fetcher.Concurrency,
	)

	metrics := observability.NewMetrics(logger)

	httpClient := fetcher.NewHTTPClient(&cfg.Fetcher, metrics, logger)
	defer httpClient.Close()

	eng := engine.New(cfg, metrics, logger)
	eng.SetSource(fetcher.NewWikiClient(&cfg.Wiki, httpClient, logger))
	eng.SetExtractor(parser.NewImageExtractor(logger))
	eng.SetPipeline(pipeline.ForConfig(cfg.Run.IgnoreTemplates, logger))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := eng.Run(ctx)
	if err != nil {
		return err
	}

	if err := renderer.Render(report); err != nil {
		return err
	}

	metrics.Log("run stats")
	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "wikicaptions %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd(opts *options, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Run:\n")
			fmt.Fprintf(stdout, "  Lang:              %s\n", cfg.Run.Lang)
			fmt.Fprintf(stdout, "  Page:              %s\n", cfg.Run.Page)
			fmt.Fprintf(stdout, "  Count:             %d\n", cfg.Run.Count)
			fmt.Fprintf(stdout, "  Ignore Templates:  %v\n", cfg.Run.IgnoreTemplates)
			fmt.Fprintf(stdout, "  Output:            %s\n", cfg.Run.Output)
			fmt.Fprintf(stdout, "\nWiki:\n")
			fmt.Fprintf(stdout, "  API URL:           %s\n", cfg.Wiki.APIURL)
			fmt.Fprintf(stdout, "  REST URL:          %s\n", cfg.Wiki.RESTURL)
			fmt.Fprintf(stdout, "\nFetcher:\n")
			fmt.Fprintf(stdout, "  User Agent:        %s\n", cfg.Fetcher.UserAgent)
			fmt.Fprintf(stdout, "  Request Timeout:   %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Fprintf(stdout, "  Max Body Size:     %d bytes\n", cfg.Fetcher.MaxBodySize)
			fmt.Fprintf(stdout, "  Rate Limit:        %g req/s\n", cfg.Fetcher.RateLimit)
			fmt.Fprintf(stdout, "  Concurrency:       %d\n", cfg.Fetcher.Concurrency)
			fmt.Fprintf(stdout, "\nLogging:\n")
			fmt.Fprintf(stdout, "  Level:             %s\n", cfg.Logging.Level)
			fmt.Fprintf(stdout, "  Format:            %s\n", cfg.Logging.Format)
			return nil
		},
	}
}

// setupLogger creates a structured logger on stderr, keeping stdout for the report.
func setupLogger(cfg *config.Config, verbose bool, w io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies explicitly set command-line flags to the config.
func applyCLIOverrides(cmd *cobra.Command, opts *options, cfg *config.Config) {
	flags := cmd.Flags()

	if opts.lang != "" {
		cfg.Run.Lang = strings.TrimSpace(opts.lang)
	}
	if opts.page != "" {
		cfg.Run.Page = opts.page
	}
	if flags.Changed("count") {
		cfg.Run.Count = opts.count
	}
	if flags.Changed("ignore-templates") {
		cfg.Run.IgnoreTemplates = opts.ignoreTemplates
	}
	if flags.Changed("output") {
		cfg.Run.Output = strings.ToLower(opts.output)
	}
	if flags.Changed("concurrency") {
		cfg.Fetcher.Concurrency = opts.concurrency
	}
	if opts.userAgent != "" {
		cfg.Fetcher.UserAgent = opts.userAgent
	}
	if flags.Changed("rate-limit") {
		cfg.Fetcher.RateLimit = opts.rateLimit
	}
}
