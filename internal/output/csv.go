package output

import (
	"encoding/csv"
	"io"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

// CSVRenderer writes one row per record with the page title flattened in.
// With Header unset the label row is skipped so output can be appended to
// an existing sheet.
type CSVRenderer struct {
	w      io.Writer
	Header bool
}

// NewCSVRenderer creates a CSV renderer.
func NewCSVRenderer(w io.Writer, header bool) *CSVRenderer {
	return &CSVRenderer{w: w, Header: header}
}

func (r *CSVRenderer) Name() string {
	if r.Header {
		return "csv"
	}
	return "csv-headless"
}

func (r *CSVRenderer) Render(report *types.Report) error {
	writer := csv.NewWriter(r.w)
	writer.UseCRLF = true

	if r.Header {
		if err := writer.Write(HeaderRow()); err != nil {
			return &types.OutputError{Renderer: r.Name(), Err: err}
		}
	}

	for _, page := range report.Pages() {
		for i := range page.Records {
			if err := writer.Write(Row(page.Title, &page.Records[i])); err != nil {
				return &types.OutputError{Renderer: r.Name(), Err: err}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &types.OutputError{Renderer: r.Name(), Err: err}
	}
	return nil
}
