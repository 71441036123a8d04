package observability

import (
	"log/slog"
	"sync/atomic"
)

// Metrics tracks counters for a single run. All methods are safe on a nil
// receiver so components can be used without metrics.
type Metrics struct {
	RequestsTotal   atomic.Int64
	RequestsFailed  atomic.Int64
	BytesDownloaded atomic.Int64

	PagesSampled   atomic.Int64
	PagesProcessed atomic.Int64
	PagesReported  atomic.Int64

	ImagesExtracted atomic.Int64
	ImagesDropped   atomic.Int64

	logger *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger.With("component", "metrics"),
	}
}

// RequestDone records a successful request and its decoded body size.
func (m *Metrics) RequestDone(bytes int64) {
	if m == nil {
		return
	}
	m.RequestsTotal.Add(1)
	m.BytesDownloaded.Add(bytes)
}

// RequestFailed records a request that ended in a transport error or non-2xx status.
func (m *Metrics) RequestFailed() {
	if m == nil {
		return
	}
	m.RequestsTotal.Add(1)
	m.RequestsFailed.Add(1)
}

// PageDone records one processed page with its extracted and kept record counts.
func (m *Metrics) PageDone(extracted, kept int) {
	if m == nil {
		return
	}
	m.PagesProcessed.Add(1)
	m.ImagesExtracted.Add(int64(extracted))
	m.ImagesDropped.Add(int64(extracted - kept))
}

// Snapshot returns all metrics as a map.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return map[string]int64{}
	}
	return map[string]int64{
		"requests_total":   m.RequestsTotal.Load(),
		"requests_failed":  m.RequestsFailed.Load(),
		"bytes_downloaded": m.BytesDownloaded.Load(),
		"pages_sampled":    m.PagesSampled.Load(),
		"pages_processed":  m.PagesProcessed.Load(),
		"pages_reported":   m.PagesReported.Load(),
		"images_extracted": m.ImagesExtracted.Load(),
		"images_dropped":   m.ImagesDropped.Load(),
	}
}

// Log writes the current counters at info level.
func (m *Metrics) Log(msg string) {
	if m == nil {
		return
	}
	snap := m.Snapshot()
	args := make([]any, 0, 2*len(snap))
	for _, k := range []string{
		"pages_sampled", "pages_processed", "pages_reported",
		"images_extracted", "images_dropped",
		"requests_total", "requests_failed", "bytes_downloaded",
	} {
		args = append(args, k, snap[k])
	}
	m.logger.Info(msg, args...)
}
