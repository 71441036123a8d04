package output

import (
	"fmt"
	"strconv"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

// column is one field of the tabular output.
type column struct {
	key   string
	label string
	get   func(page string, r *types.ImageRecord) string
	set   func(r *types.ImageRecord, v string) error
}

// columns is the fixed tabular column order. page_title is handled by the
// callers of get/set.
var columns = []column{
	{"page_title", "Page name",
		func(page string, r *types.ImageRecord) string { return page },
		nil},
	{"filename", "Image name",
		func(_ string, r *types.ImageRecord) string { return r.Filename },
		func(r *types.ImageRecord, v string) error { r.Filename = v; return nil }},
	{"caption", "Caption", optGet(func(r *types.ImageRecord) *string { return r.Caption }),
		optSet(func(r *types.ImageRecord) **string { return &r.Caption })},
	{"alt", "Alt text", optGet(func(r *types.ImageRecord) *string { return r.Alt }),
		optSet(func(r *types.ImageRecord) **string { return &r.Alt })},
	{"position", "Inline/block",
		func(_ string, r *types.ImageRecord) string { return string(r.Position) },
		func(r *types.ImageRecord, v string) error { r.Position = types.Position(v); return nil }},
	{"type", "Image format",
		func(_ string, r *types.ImageRecord) string { return string(r.Type) },
		func(r *types.ImageRecord, v string) error { r.Type = types.ImageType(v); return nil }},
	{"link", "Link", optGet(func(r *types.ImageRecord) *string { return r.Link }),
		optSet(func(r *types.ImageRecord) **string { return &r.Link })},
	{"width", "Thumbnail width", optGet(func(r *types.ImageRecord) *string { return r.Width }),
		optSet(func(r *types.ImageRecord) **string { return &r.Width })},
	{"height", "Thumbnail height", optGet(func(r *types.ImageRecord) *string { return r.Height }),
		optSet(func(r *types.ImageRecord) **string { return &r.Height })},
	{"orig-width", "Original width", optGet(func(r *types.ImageRecord) *string { return r.OrigWidth }),
		optSet(func(r *types.ImageRecord) **string { return &r.OrigWidth })},
	{"orig-height", "Original height", optGet(func(r *types.ImageRecord) *string { return r.OrigHeight }),
		optSet(func(r *types.ImageRecord) **string { return &r.OrigHeight })},
	{"mediatype", "Media type", optGet(func(r *types.ImageRecord) *string { return r.MediaType }),
		optSet(func(r *types.ImageRecord) **string { return &r.MediaType })},
	{"from_template", "From template?",
		func(_ string, r *types.ImageRecord) string { return formatBool(r.FromTemplate) },
		boolSet(func(r *types.ImageRecord) *bool { return &r.FromTemplate })},
	{"from_commons", "From commons?",
		func(_ string, r *types.ImageRecord) string { return formatBool(r.FromCommons) },
		boolSet(func(r *types.ImageRecord) *bool { return &r.FromCommons })},
}

// ColumnKeys returns the internal column names in output order.
func ColumnKeys() []string {
	keys := make([]string, len(columns))
	for i, c := range columns {
		keys[i] = c.key
	}
	return keys
}

// HeaderRow returns the display labels in output order.
func HeaderRow() []string {
	labels := make([]string, len(columns))
	for i, c := range columns {
		labels[i] = c.label
	}
	return labels
}

// Row flattens one record into its tabular form.
func Row(page string, rec *types.ImageRecord) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = c.get(page, rec)
	}
	return row
}

// ParseRow rebuilds a page title and record from a tabular row. Empty cells
// become absent optional fields.
func ParseRow(row []string) (string, types.ImageRecord, error) {
	var rec types.ImageRecord
	if len(row) != len(columns) {
		return "", rec, fmt.Errorf("expected %d columns, got %d", len(columns), len(row))
	}
	for i, c := range columns {
		if c.set == nil {
			continue
		}
		if err := c.set(&rec, row[i]); err != nil {
			return "", rec, fmt.Errorf("column %s: %w", c.key, err)
		}
	}
	return row[0], rec, nil
}

// formatBool spells booleans the way existing caption sheets do.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func optGet(field func(*types.ImageRecord) *string) func(string, *types.ImageRecord) string {
	return func(_ string, r *types.ImageRecord) string { return types.Value(field(r)) }
}

func optSet(field func(*types.ImageRecord) **string) func(*types.ImageRecord, string) error {
	return func(r *types.ImageRecord, v string) error {
		if v != "" {
			*field(r) = &v
		}
		return nil
	}
}

func boolSet(field func(*types.ImageRecord) *bool) func(*types.ImageRecord, string) error {
	return func(r *types.ImageRecord, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*field(r) = b
		return nil
	}
}
