package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/IshaanNene/wikicaptions/internal/types"
)

// PrettyRenderer writes a human-readable block per page: a "== Title =="
// heading followed by a dict-style dump of its records.
type PrettyRenderer struct {
	w io.Writer
}

// NewPrettyRenderer creates a pretty-print renderer.
func NewPrettyRenderer(w io.Writer) *PrettyRenderer {
	return &PrettyRenderer{w: w}
}

func (r *PrettyRenderer) Name() string { return "print" }

func (r *PrettyRenderer) Render(report *types.Report) error {
	bw := bufio.NewWriter(r.w)

	for _, page := range report.Pages() {
		fmt.Fprintf(bw, "== %s ==\n", page.Title)
		writeRecords(bw, page.Records)
		bw.WriteString("\n\n\n")
	}

	if err := bw.Flush(); err != nil {
		return &types.OutputError{Renderer: r.Name(), Err: err}
	}
	return nil
}

// prettyField is one key of the dump. value reports false for keys the
// record does not carry; alt, caption and link are only listed when set.
// An image without an anchor has no link, so the dump shows no 'link' key
// rather than 'link': None.
type prettyField struct {
	key   string
	value func(r *types.ImageRecord) (string, bool)
}

var prettyFields = []prettyField{
	{"alt", ifSet(func(r *types.ImageRecord) *string { return r.Alt })},
	{"caption", ifSet(func(r *types.ImageRecord) *string { return r.Caption })},
	{"filename", always(func(r *types.ImageRecord) string { return pyRepr(r.Filename) })},
	{"from_commons", always(func(r *types.ImageRecord) string { return formatBool(r.FromCommons) })},
	{"from_template", always(func(r *types.ImageRecord) string { return formatBool(r.FromTemplate) })},
	{"height", orNone(func(r *types.ImageRecord) *string { return r.Height })},
	{"link", ifSet(func(r *types.ImageRecord) *string { return r.Link })},
	{"mediatype", orNone(func(r *types.ImageRecord) *string { return r.MediaType })},
	{"orig-height", orNone(func(r *types.ImageRecord) *string { return r.OrigHeight })},
	{"orig-width", orNone(func(r *types.ImageRecord) *string { return r.OrigWidth })},
	{"position", always(func(r *types.ImageRecord) string { return pyRepr(string(r.Position)) })},
	{"type", always(func(r *types.ImageRecord) string { return pyRepr(string(r.Type)) })},
	{"width", orNone(func(r *types.ImageRecord) *string { return r.Width })},
}

func writeRecords(w *bufio.Writer, records []types.ImageRecord) {
	w.WriteString("[")
	for i := range records {
		if i > 0 {
			w.WriteString(",\n ")
		}
		writeRecord(w, &records[i])
	}
	w.WriteString("]\n")
}

func writeRecord(w *bufio.Writer, rec *types.ImageRecord) {
	w.WriteString("{")
	first := true
	for _, f := range prettyFields {
		v, ok := f.value(rec)
		if !ok {
			continue
		}
		if !first {
			w.WriteString(",\n  ")
		}
		first = false
		fmt.Fprintf(w, "%s: %s", pyRepr(f.key), v)
	}
	w.WriteString("}")
}

func always(repr func(*types.ImageRecord) string) func(*types.ImageRecord) (string, bool) {
	return func(r *types.ImageRecord) (string, bool) { return repr(r), true }
}

func orNone(field func(*types.ImageRecord) *string) func(*types.ImageRecord) (string, bool) {
	return func(r *types.ImageRecord) (string, bool) {
		v := field(r)
		if v == nil {
			return "None", true
		}
		return pyRepr(*v), true
	}
}

func ifSet(field func(*types.ImageRecord) *string) func(*types.ImageRecord) (string, bool) {
	return func(r *types.ImageRecord) (string, bool) {
		v := field(r)
		if v == nil {
			return "", false
		}
		return pyRepr(*v), true
	}
}

// pyRepr quotes s in the single-quote-preferred style of the dump.
func pyRepr(s string) string {
	quote := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		quote = `"`
	}
	var b strings.Builder
	b.WriteString(quote)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case string(r) == quote:
			b.WriteString(`\` + quote)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(quote)
	return b.String()
}
