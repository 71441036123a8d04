package fetcher

import (
	"context"
)

// Source supplies page titles and rendered page HTML for one wiki.
type Source interface {
	// RandomTitles returns up to n random main-namespace article titles.
	RandomTitles(ctx context.Context, lang string, n int) ([]string, error)

	// PageHTML returns the Parsoid-rendered HTML of a page.
	PageHTML(ctx context.Context, lang, title string) (string, error)
}

// Sample returns the titles to process: the explicit page when one is given,
// otherwise a random sample of n pages from src.
func Sample(ctx context.Context, src Source, lang, page string, n int) ([]string, error) {
	if page != "" {
		return []string{page}, nil
	}
	return src.RandomTitles(ctx, lang, n)
}
