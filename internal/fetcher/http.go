package fetcher

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"golang.org/x/time/rate"

	"github.com/IshaanNene/wikicaptions/internal/config"
	"github.com/IshaanNene/wikicaptions/internal/observability"
	"github.com/IshaanNene/wikicaptions/internal/types"
)

// HTTPClient performs GET requests against the wiki with a fixed
// User-Agent, optional pacing, and transparent decompression.
type HTTPClient struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
	limiter     *rate.Limiter
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// NewHTTPClient creates an HTTP client from the fetcher configuration.
// metrics may be nil.
func NewHTTPClient(cfg *config.FetcherConfig, metrics *observability.Metrics, logger *slog.Logger) *HTTPClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableCompression = true // decoded in decompressReader, including brotli

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &HTTPClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		userAgent:   cfg.UserAgent,
		maxBodySize: cfg.MaxBodySize,
		limiter:     limiter,
		metrics:     metrics,
		logger:      logger.With("component", "http_client"),
	}
}

// Get fetches rawURL and returns the decoded body. Any non-2xx status is a
// *types.FetchError.
func (c *HTTPClient) Get(ctx context.Context, rawURL, accept string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &types.FetchError{URL: rawURL, Err: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RequestFailed()
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RequestFailed()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &types.FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	reader, err := decompressReader(resp, resp.Body)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}

	// The limit applies to the decoded body; one extra byte detects overflow.
	if c.maxBodySize > 0 {
		reader = io.LimitReader(reader, c.maxBodySize+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}
	if c.maxBodySize > 0 && int64(len(body)) > c.maxBodySize {
		c.metrics.RequestFailed()
		return nil, &types.FetchError{
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w: limit %d bytes", types.ErrBodyTooLarge, c.maxBodySize),
		}
	}

	c.metrics.RequestDone(int64(len(body)))
	c.logger.Debug("fetch complete",
		"url", rawURL,
		"status", resp.StatusCode,
		"size", len(body),
		"duration", time.Since(start),
	)

	return body, nil
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// decompressReader wraps a reader with the decoder named by Content-Encoding.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}
