package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanNene/wikicaptions/internal/config"
	"github.com/IshaanNene/wikicaptions/internal/observability"
	"github.com/IshaanNene/wikicaptions/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestClient(t *testing.T, handler http.Handler) (*WikiClient, *observability.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := config.DefaultConfig()
	cfg.Wiki.APIURL = srv.URL + "/{lang}/w/api.php"
	cfg.Wiki.RESTURL = srv.URL + "/{lang}/api/rest_v1/page/html/"

	metrics := observability.NewMetrics(testLogger)
	hc := NewHTTPClient(&cfg.Fetcher, metrics, testLogger)
	t.Cleanup(func() { hc.Close() })
	return NewWikiClient(&cfg.Wiki, hc, testLogger), metrics
}

func TestRandomTitles(t *testing.T) {
	var gotQuery map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc("/fr/w/api.php", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		assert.Contains(t, r.Header.Get("User-Agent"), "wikicaptions/")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"batchcomplete":true,"query":{"random":[{"id":1,"ns":0,"title":"Paris"},{"id":2,"ns":0,"title":"Lyon"}]}}`))
	})
	wc, metrics := newTestClient(t, mux)

	titles, err := wc.RandomTitles(context.Background(), "fr", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Lyon"}, titles)

	assert.Equal(t, map[string]string{
		"format":        "json",
		"formatversion": "2",
		"action":        "query",
		"list":          "random",
		"rnnamespace":   "0",
		"rnfilterredir": "nonredirects",
		"rnlimit":       "2",
	}, gotQuery)
	assert.Equal(t, int64(1), metrics.RequestsTotal.Load())
}

func TestRandomTitlesMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"no query", `{"batchcomplete":true}`},
		{"no random list", `{"query":{}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wc, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			_, err := wc.RandomTitles(context.Background(), "en", 5)
			var apiErr *types.APIError
			require.True(t, errors.As(err, &apiErr), "got %v", err)
		})
	}
}

func TestRandomTitlesRejectsZeroCount(t *testing.T) {
	wc, _ := newTestClient(t, http.NotFoundHandler())
	_, err := wc.RandomTitles(context.Background(), "en", 0)
	assert.Error(t, err)
}

func TestPageHTMLEscapesTitle(t *testing.T) {
	var gotPath string
	wc, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("<html><body>ok</body></html>"))
	}))

	html, err := wc.PageHTML(context.Background(), "en", "AC/DC live at Café+Bar")
	require.NoError(t, err)
	assert.Equal(t, "<html><body>ok</body></html>", html)
	assert.Equal(t, "/en/api/rest_v1/page/html/AC%2FDC_live_at_Caf%C3%A9%2BBar", gotPath)
}

func TestEscapeTitle(t *testing.T) {
	assert.Equal(t, "Main_Page", EscapeTitle("Main Page"))
	assert.Equal(t, "Foo%3A_bar%3F", EscapeTitle("Foo: bar?"))
	assert.Equal(t, "A%26B", EscapeTitle("A&B"))
}

func TestPageHTMLNon2xxIsFetchError(t *testing.T) {
	wc, metrics := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := wc.PageHTML(context.Background(), "en", "Nope")
	var fe *types.FetchError
	require.True(t, errors.As(err, &fe), "got %v", err)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Equal(t, int64(1), metrics.RequestsFailed.Load())
}

func TestPageHTMLDecompresses(t *testing.T) {
	const page = "<html><body><p>compressed</p></body></html>"

	tests := []struct {
		encoding string
		write    func(w http.ResponseWriter)
	}{
		{"br", func(w http.ResponseWriter) {
			bw := brotli.NewWriter(w)
			bw.Write([]byte(page))
			bw.Close()
		}},
		{"gzip", func(w http.ResponseWriter) {
			gw := gzip.NewWriter(w)
			gw.Write([]byte(page))
			gw.Close()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			wc, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.Header.Get("Accept-Encoding"), tt.encoding)
				w.Header().Set("Content-Encoding", tt.encoding)
				tt.write(w)
			}))
			html, err := wc.PageHTML(context.Background(), "en", "Zipped")
			require.NoError(t, err)
			assert.Equal(t, page, html)
		})
	}
}

func TestBodyLimitAppliesToDecodedSize(t *testing.T) {
	big := strings.Repeat("a", 1000)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/gzip":
			w.Header().Set("Content-Encoding", "gzip")
			gw := gzip.NewWriter(w)
			gw.Write([]byte(big))
			gw.Close()
		case "/plain":
			w.Write([]byte(big))
		case "/exact":
			w.Write([]byte(big[:64]))
		}
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Fetcher.MaxBodySize = 64
	metrics := observability.NewMetrics(testLogger)
	hc := NewHTTPClient(&cfg.Fetcher, metrics, testLogger)
	defer hc.Close()

	for _, path := range []string{"/gzip", "/plain"} {
		body, err := hc.Get(context.Background(), srv.URL+path, "text/html")
		assert.Nil(t, body, path)
		var fe *types.FetchError
		require.True(t, errors.As(err, &fe), "%s: got %v", path, err)
		assert.True(t, errors.Is(err, types.ErrBodyTooLarge), "%s: got %v", path, err)
	}

	body, err := hc.Get(context.Background(), srv.URL+"/exact", "text/html")
	require.NoError(t, err)
	assert.Len(t, body, 64)
	assert.Equal(t, int64(2), metrics.RequestsFailed.Load())
}

func TestRateLimitedClientStillFetches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	cfg := config.DefaultConfig()
	cfg.Fetcher.RateLimit = 1000
	hc := NewHTTPClient(&cfg.Fetcher, nil, testLogger)
	defer hc.Close()

	for i := 0; i < 3; i++ {
		body, err := hc.Get(context.Background(), srv.URL, "text/plain")
		require.NoError(t, err)
		assert.Equal(t, "ok", string(body))
	}
}

func TestRateLimitedClientStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Fetcher.RateLimit = 0.001
	hc := NewHTTPClient(&cfg.Fetcher, nil, testLogger)
	defer hc.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := hc.Get(ctx, "http://127.0.0.1:1/", "text/plain")
	assert.Error(t, err)
}

type stubSource struct{ titles []string }

func (s stubSource) RandomTitles(ctx context.Context, lang string, n int) ([]string, error) {
	return s.titles, nil
}

func (s stubSource) PageHTML(ctx context.Context, lang, title string) (string, error) {
	return "", nil
}

func TestSample(t *testing.T) {
	src := stubSource{titles: []string{"A", "B"}}

	titles, err := Sample(context.Background(), src, "en", "Explicit page", 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"Explicit page"}, titles)

	titles, err = Sample(context.Background(), src, "en", "", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, titles)
}
