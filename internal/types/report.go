package types

// PageImages pairs a page title with the records extracted from it.
type PageImages struct {
	Title   string
	Records []ImageRecord
}

// Report maps page titles to their image records, keeping insertion order.
type Report struct {
	pages []PageImages
	index map[string]int
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{index: make(map[string]int)}
}

// Set stores the records for a page. A title that is already present keeps
// its original position and has its records replaced.
func (r *Report) Set(title string, records []ImageRecord) {
	if i, ok := r.index[title]; ok {
		r.pages[i].Records = records
		return
	}
	r.index[title] = len(r.pages)
	r.pages = append(r.pages, PageImages{Title: title, Records: records})
}

// Get returns the records stored for a page.
func (r *Report) Get(title string) ([]ImageRecord, bool) {
	i, ok := r.index[title]
	if !ok {
		return nil, false
	}
	return r.pages[i].Records, true
}

// Pages returns the pages in insertion order.
func (r *Report) Pages() []PageImages {
	return r.pages
}

// Len returns the number of pages.
func (r *Report) Len() int {
	return len(r.pages)
}

// RecordCount returns the total number of records across all pages.
func (r *Report) RecordCount() int {
	n := 0
	for _, p := range r.pages {
		n += len(p.Records)
	}
	return n
}
