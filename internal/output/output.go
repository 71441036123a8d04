package output

import (
	"fmt"
	"io"

	"github.com/IshaanNene/wikicaptions/internal/config"
	"github.com/IshaanNene/wikicaptions/internal/types"
)

// Renderer writes a report in one output format.
type Renderer interface {
	// Render writes every page of the report, in report order.
	Render(report *types.Report) error

	// Name returns the output format identifier.
	Name() string
}

// NewRenderer creates the renderer for an --output value.
func NewRenderer(format string, w io.Writer) (Renderer, error) {
	switch format {
	case config.OutputPrint:
		return NewPrettyRenderer(w), nil
	case config.OutputCSV:
		return NewCSVRenderer(w, true), nil
	case config.OutputCSVHeadless:
		return NewCSVRenderer(w, false), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
