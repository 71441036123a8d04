package parser

import (
	"github.com/PuerkitoBio/goquery"
)

// lookup resolves selector under sel (or sel itself when selector is empty)
// and reads attr from the first match. ok is false when either step finds nothing.
func lookup(sel *goquery.Selection, selector, attr string) (string, bool) {
	target := sel
	if selector != "" {
		target = sel.Find(selector).First()
	}
	if target.Length() == 0 {
		return "", false
	}
	return target.Attr(attr)
}

// lookupPtr is lookup for optional record fields.
func lookupPtr(sel *goquery.Selection, selector, attr string) *string {
	v, ok := lookup(sel, selector, attr)
	if !ok {
		return nil
	}
	return &v
}
