package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

const (
	imageSelector      = `[typeof="mw:Image"],[typeof^="mw:Image/"]`
	provenanceSelector = `[typeof~="mw:Transclusion"],[about]`
	imageTypePrefix    = "mw:Image"
	commonsPrefix      = "//upload.wikimedia.org/wikipedia/commons/"
)

// ImageExtractor extracts image records from Parsoid HTML with goquery.
// It holds no per-page state and is safe for concurrent use.
type ImageExtractor struct {
	logger *slog.Logger
}

// NewImageExtractor creates a new image extractor.
func NewImageExtractor(logger *slog.Logger) *ImageExtractor {
	return &ImageExtractor{
		logger: logger.With("component", "image_extractor"),
	}
}

// Extract implements Extractor.
func (e *ImageExtractor) Extract(html, page string) ([]types.ImageRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &types.MarkupError{Page: page, Err: err}
	}

	var records []types.ImageRecord
	var extractErr error

	doc.Find(imageSelector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
		rec, err := extractImage(sel, page)
		if err != nil {
			extractErr = err
			return false
		}
		records = append(records, rec)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	e.logger.Debug("images extracted", "page", page, "count", len(records))
	return records, nil
}

// extractImage builds the record for a single mw:Image element.
func extractImage(sel *goquery.Selection, page string) (types.ImageRecord, error) {
	tag := goquery.NodeName(sel)
	shape := classify(sel)
	if shape == ShapeUnknown {
		return types.ImageRecord{}, &types.MarkupError{Page: page, Tag: tag, Err: types.ErrUnexpectedShape}
	}

	filename, _ := lookup(sel, "img", "resource")
	rec := types.ImageRecord{
		Filename:     types.StripDot(filename),
		Position:     positionOf(shape),
		Type:         imageTypeOf(sel),
		Width:        lookupPtr(sel, "img", "width"),
		Height:       lookupPtr(sel, "img", "height"),
		OrigWidth:    lookupPtr(sel, "img", "data-file-width"),
		OrigHeight:   lookupPtr(sel, "img", "data-file-height"),
		MediaType:    lookupPtr(sel, "img", "data-file-type"),
		FromTemplate: fromTemplate(sel),
	}

	raw, err := rawCaption(sel, shape)
	if err != nil {
		return types.ImageRecord{}, &types.MarkupError{Page: page, Tag: tag, Err: err}
	}
	if raw != "" {
		caption, err := plainText(raw)
		if err != nil {
			return types.ImageRecord{}, &types.MarkupError{Page: page, Tag: tag, Err: fmt.Errorf("parse caption: %w", err)}
		}
		rec.Caption = &caption
	}

	rec.Alt = lookupPtr(sel, "img", "alt")

	if href, ok := lookup(sel, "a", "href"); ok {
		if link := types.StripDot(href); link != rec.Filename {
			rec.Link = &link
		}
	}

	img := sel.Find("img").First()
	if img.Length() == 0 {
		return types.ImageRecord{}, &types.MarkupError{Page: page, Tag: tag, Err: types.ErrMissingImage}
	}
	src, ok := img.Attr("src")
	if !ok {
		return types.ImageRecord{}, &types.MarkupError{Page: page, Tag: tag, Err: types.ErrMissingSource}
	}
	rec.FromCommons = strings.HasPrefix(src, commonsPrefix)

	return rec, nil
}

func positionOf(shape Shape) types.Position {
	if shape == ShapeFigure {
		return types.PositionBlock
	}
	return types.PositionInline
}

// imageTypeOf reads the display variant from the typeof suffix,
// e.g. "mw:Image/Thumb" -> thumb.
func imageTypeOf(sel *goquery.Selection) types.ImageType {
	typeOf, _ := sel.Attr("typeof")
	suffix := strings.TrimPrefix(typeOf, imageTypePrefix)
	suffix = strings.TrimPrefix(suffix, "/")
	fields := strings.Fields(suffix)
	if len(fields) == 0 {
		return types.ImageTypeImage
	}
	return types.ImageType(strings.ToLower(fields[0]))
}

// fromTemplate reports whether the nearest transclusion or about-carrying
// ancestor-or-self is a real element rather than the document root.
func fromTemplate(sel *goquery.Selection) bool {
	closest := sel.Closest(provenanceSelector)
	if closest.Length() == 0 {
		return false
	}
	return goquery.NodeName(closest) != "html"
}
