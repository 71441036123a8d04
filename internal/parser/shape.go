package parser

import (
	"github.com/PuerkitoBio/goquery"
)

// Shape is the container form of an mw:Image element.
type Shape int

const (
	// ShapeUnknown is any container the media markup does not define.
	ShapeUnknown Shape = iota
	// ShapeInlineMarker is a bare <span>; its caption lives in data-mw.
	ShapeInlineMarker
	// ShapeFigure is a block <figure> with an optional <figcaption>.
	ShapeFigure
	// ShapeInlineFigure is <figure-inline>, laid out inline but captioned like a figure.
	ShapeInlineFigure
)

func (s Shape) String() string {
	switch s {
	case ShapeInlineMarker:
		return "span"
	case ShapeFigure:
		return "figure"
	case ShapeInlineFigure:
		return "figure-inline"
	default:
		return "unknown"
	}
}

// classify maps an element's tag name to its Shape.
func classify(sel *goquery.Selection) Shape {
	switch goquery.NodeName(sel) {
	case "span":
		return ShapeInlineMarker
	case "figure":
		return ShapeFigure
	case "figure-inline":
		return ShapeInlineFigure
	default:
		return ShapeUnknown
	}
}
