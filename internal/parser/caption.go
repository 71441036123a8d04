package parser

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

// rawCaption returns the caption markup for an image element, dispatching on
// its shape. An empty string means the image has no caption.
func rawCaption(sel *goquery.Selection, shape Shape) (string, error) {
	switch shape {
	case ShapeInlineMarker:
		dataMW, ok := sel.Attr("data-mw")
		if !ok || dataMW == "" {
			return "", nil
		}
		var attribs map[string]any
		if err := json.Unmarshal([]byte(dataMW), &attribs); err != nil {
			return "", fmt.Errorf("%w: %v", types.ErrBadDataMW, err)
		}
		caption, _ := attribs["caption"].(string)
		return caption, nil

	case ShapeFigure, ShapeInlineFigure:
		figcaption := sel.Find("figcaption").First()
		if figcaption.Length() == 0 {
			return "", nil
		}
		inner, err := figcaption.Html()
		if err != nil {
			return "", err
		}
		return inner, nil

	default:
		return "", types.ErrUnexpectedShape
	}
}

// plainText parses caption markup and returns its text content with
// newlines turned into spaces.
func plainText(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", err
	}
	// TemplateStyles and scripts are not caption text.
	for _, n := range htmlquery.Find(doc, "//style|//script") {
		n.Parent.RemoveChild(n)
	}
	return strings.ReplaceAll(htmlquery.InnerText(doc), "\n", " "), nil
}
