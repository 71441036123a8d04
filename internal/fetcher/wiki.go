package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/IshaanNene/wikicaptions/internal/config"
	"github.com/IshaanNene/wikicaptions/internal/types"
)

// WikiClient talks to the MediaWiki action API and the Parsoid REST endpoint.
type WikiClient struct {
	http    *HTTPClient
	apiURL  string
	restURL string
	logger  *slog.Logger
}

// NewWikiClient creates a client for the endpoints in cfg.
func NewWikiClient(cfg *config.WikiConfig, client *HTTPClient, logger *slog.Logger) *WikiClient {
	return &WikiClient{
		http:    client,
		apiURL:  cfg.APIURL,
		restURL: strings.TrimRight(cfg.RESTURL, "/"),
		logger:  logger.With("component", "wiki_client"),
	}
}

type randomResponse struct {
	Query *struct {
		Random []struct {
			Title string `json:"title"`
		} `json:"random"`
	} `json:"query"`
}

// RandomTitles implements Source.
func (w *WikiClient) RandomTitles(ctx context.Context, lang string, n int) ([]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("sample count must be > 0, got %d", n)
	}

	params := url.Values{
		"format":        {"json"},
		"formatversion": {"2"},
		"action":        {"query"},
		"list":          {"random"},
		"rnnamespace":   {"0"},
		"rnfilterredir": {"nonredirects"},
		"rnlimit":       {strconv.Itoa(n)},
	}
	endpoint := expandLang(w.apiURL, lang)
	reqURL := endpoint + "?" + params.Encode()

	body, err := w.http.Get(ctx, reqURL, "application/json")
	if err != nil {
		return nil, err
	}

	var rr randomResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return nil, &types.APIError{Endpoint: endpoint, Err: err}
	}
	if rr.Query == nil || rr.Query.Random == nil {
		return nil, &types.APIError{Endpoint: endpoint, Err: errors.New("missing query.random")}
	}

	titles := make([]string, 0, len(rr.Query.Random))
	for _, item := range rr.Query.Random {
		titles = append(titles, item.Title)
	}

	w.logger.Debug("sampled pages", "lang", lang, "requested", n, "got", len(titles))
	return titles, nil
}

// PageHTML implements Source.
func (w *WikiClient) PageHTML(ctx context.Context, lang, title string) (string, error) {
	body, err := w.http.Get(ctx, w.PageURL(lang, title), "text/html")
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// PageURL returns the rendering endpoint URL for a page title.
func (w *WikiClient) PageURL(lang, title string) string {
	return expandLang(w.restURL, lang) + "/" + EscapeTitle(title)
}

// EscapeTitle turns a page title into a single path segment: spaces become
// underscores and every reserved character, "/" included, is percent-encoded.
func EscapeTitle(title string) string {
	return url.QueryEscape(strings.ReplaceAll(title, " ", "_"))
}

func expandLang(tmpl, lang string) string {
	return strings.ReplaceAll(tmpl, "{lang}", lang)
}
