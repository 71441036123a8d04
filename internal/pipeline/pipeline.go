package pipeline

import (
	"log/slog"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

// Middleware processes a record and returns the (possibly modified) record.
// Return nil to drop the record from the pipeline.
type Middleware interface {
	// Name returns the middleware's identifier.
	Name() string

	// Process transforms a record. Return nil to drop it.
	Process(rec *types.ImageRecord) (*types.ImageRecord, error)
}

// Pipeline chains middleware processors together.
type Pipeline struct {
	middlewares []Middleware
	logger      *slog.Logger
}

// New creates a new Pipeline.
func New(logger *slog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With("component", "pipeline"),
	}
}

// Use adds a middleware to the pipeline chain.
func (p *Pipeline) Use(mw Middleware) {
	p.middlewares = append(p.middlewares, mw)
	p.logger.Debug("middleware added", "name", mw.Name(), "position", len(p.middlewares))
}

// Process runs the record through all middleware in order.
func (p *Pipeline) Process(rec *types.ImageRecord) (*types.ImageRecord, error) {
	current := rec

	for _, mw := range p.middlewares {
		result, err := mw.Process(current)
		if err != nil {
			return nil, &types.PipelineError{Stage: mw.Name(), Err: err}
		}
		if result == nil {
			p.logger.Debug("record dropped", "stage", mw.Name(), "filename", rec.Filename)
			return nil, nil
		}
		current = result
	}

	return current, nil
}

// ProcessAll runs every record of a page through the chain and returns the
// survivors in their original order.
func (p *Pipeline) ProcessAll(records []types.ImageRecord) ([]types.ImageRecord, error) {
	kept := make([]types.ImageRecord, 0, len(records))
	for i := range records {
		rec := records[i]
		out, err := p.Process(&rec)
		if err != nil {
			return nil, err
		}
		if out != nil {
			kept = append(kept, *out)
		}
	}
	return kept, nil
}

// Len returns the number of middleware in the chain.
func (p *Pipeline) Len() int {
	return len(p.middlewares)
}

// --- Built-in Middleware ---

// TemplateFilterMiddleware drops records whose image comes from a template.
type TemplateFilterMiddleware struct{}

func (m *TemplateFilterMiddleware) Name() string { return "template_filter" }

func (m *TemplateFilterMiddleware) Process(rec *types.ImageRecord) (*types.ImageRecord, error) {
	if rec.FromTemplate {
		return nil, nil
	}
	return rec, nil
}

// ForConfig builds the record pipeline for a run: the template filter is
// added when ignoreTemplates is set.
func ForConfig(ignoreTemplates bool, logger *slog.Logger) *Pipeline {
	p := New(logger)
	if ignoreTemplates {
		p.Use(&TemplateFilterMiddleware{})
	}
	return p
}
