package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/IshaanNene/wikicaptions/internal/config"
	"github.com/IshaanNene/wikicaptions/internal/fetcher"
	"github.com/IshaanNene/wikicaptions/internal/observability"
	"github.com/IshaanNene/wikicaptions/internal/types"
)

// Extractor is the interface for the image-record extractor.
type Extractor interface {
	Extract(html, page string) ([]types.ImageRecord, error)
}

// Pipeline is the interface for the record processing pipeline.
type Pipeline interface {
	ProcessAll(records []types.ImageRecord) ([]types.ImageRecord, error)
}

// Engine runs the sample -> fetch -> extract -> filter sequence and
// collects the per-page results into a report.
type Engine struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *observability.Metrics
	source    fetcher.Source
	extractor Extractor
	pipeline  Pipeline
}

// New creates a new Engine with the given configuration.
func New(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:     cfg,
		metrics: metrics,
		logger:  logger.With("component", "engine"),
	}
}

// SetSource sets where titles and page HTML come from.
func (e *Engine) SetSource(src fetcher.Source) { e.source = src }

// SetExtractor sets the image-record extractor.
func (e *Engine) SetExtractor(x Extractor) { e.extractor = x }

// SetPipeline sets the record pipeline. Without one every record is kept.
func (e *Engine) SetPipeline(p Pipeline) { e.pipeline = p }

// Run processes every sampled page and returns the report. Pages whose
// records are all filtered out are left out of the report. The first error
// aborts the run and discards everything gathered so far.
func (e *Engine) Run(ctx context.Context) (*types.Report, error) {
	if e.source == nil {
		return nil, errors.New("engine: no source configured")
	}
	if e.extractor == nil {
		return nil, errors.New("engine: no extractor configured")
	}

	run := e.cfg.Run
	start := time.Now()

	titles, err := fetcher.Sample(ctx, e.source, run.Lang, run.Page, run.Count)
	if err != nil {
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.PagesSampled.Add(int64(len(titles)))
	}
	e.logger.Info("pages sampled", "lang", run.Lang, "count", len(titles))

	// Each page writes only its own slot, so report order follows the
	// sample order whatever the concurrency.
	results := make([][]types.ImageRecord, len(titles))

	workers := e.cfg.Fetcher.Concurrency
	if workers < 1 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, title := range titles {
		i, title := i, title
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs, err := e.processPage(gctx, title)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := types.NewReport()
	for i, title := range titles {
		if len(results[i]) > 0 {
			report.Set(title, results[i])
		}
	}
	if e.metrics != nil {
		e.metrics.PagesReported.Store(int64(report.Len()))
	}

	e.logger.Info("run complete",
		"elapsed", time.Since(start),
		"pages", report.Len(),
		"images", report.RecordCount(),
	)
	return report, nil
}

// processPage fetches one page and returns its filtered records.
func (e *Engine) processPage(ctx context.Context, title string) ([]types.ImageRecord, error) {
	html, err := e.source.PageHTML(ctx, e.cfg.Run.Lang, title)
	if err != nil {
		return nil, err
	}

	records, err := e.extractor.Extract(html, title)
	if err != nil {
		return nil, err
	}

	kept := records
	if e.pipeline != nil {
		kept, err = e.pipeline.ProcessAll(records)
		if err != nil {
			return nil, err
		}
	}

	e.metrics.PageDone(len(records), len(kept))
	e.logger.Debug("page processed", "title", title, "images", len(records), "kept", len(kept))
	return kept, nil
}
