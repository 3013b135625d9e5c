package datatable

// DefaultEmptyMessage is the placeholder text for an empty page.
const DefaultEmptyMessage = "No data found"

// Options configures a Render pass. Every field is explicit; use
// DefaultOptions for the documented defaults.
type Options[T any] struct {
	// EmptyMessage fills the placeholder row of an empty page.
	EmptyMessage string

	// ShowHeader controls whether RenderedTable.Headers is populated.
	ShowHeader bool

	// Footer, when set, receives the whole collection passed to Render
	// (not only the current window) and returns the footer cells.
	Footer func(records []T) []string
}

// DefaultOptions returns header shown, "No data found" placeholder and
// no footer.
func DefaultOptions[T any]() Options[T] {
	return Options[T]{
		EmptyMessage: DefaultEmptyMessage,
		ShowHeader:   true,
	}
}

// Row is one rendered body row. The placeholder row of an empty page has a
// single cell that spans every column.
type Row struct {
	Cells       []string `json:"cells"`
	Placeholder bool     `json:"placeholder,omitempty"`
	Span        int      `json:"span,omitempty"`
}

// RenderedTable is the output of Render: headers, the body rows of the
// current page window, an optional footer and the pagination summary.
type RenderedTable struct {
	Keys         []string    `json:"keys"`
	Headers      []string    `json:"headers,omitempty"`
	Aligns       []Align     `json:"-"`
	Rows         []Row       `json:"rows"`
	Footer       []string    `json:"footer,omitempty"`
	Empty        bool        `json:"empty"`
	Page         PageState   `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalRecords int         `json:"total_records"`
	Start        int         `json:"start"`
	End          int         `json:"end"`
	Labels       []PageLabel `json:"labels"`
}

// ColumnCount returns the number of projected columns.
func (t RenderedTable) ColumnCount() int {
	return len(t.Keys)
}

// Render projects the current page window of records through columns.
// Column order is preserved left to right. An empty window produces exactly
// one placeholder row spanning all columns.
func Render[T any](records []T, columns []Column[T], page PageState, opts Options[T]) RenderedTable {
	n := len(records)
	start, end := page.Window(n)
	total := page.TotalPages(n)

	out := RenderedTable{
		Keys:         make([]string, len(columns)),
		Aligns:       make([]Align, len(columns)),
		Page:         page,
		TotalPages:   total,
		TotalRecords: n,
		Start:        start,
		End:          end,
		Labels:       PageLabels(page.CurrentPage, total),
	}
	for i, c := range columns {
		out.Keys[i] = c.Key
		out.Aligns[i] = c.Align
	}
	if opts.ShowHeader {
		out.Headers = make([]string, len(columns))
		for i, c := range columns {
			out.Headers[i] = c.Header
		}
	}

	window := records[start:end]
	if len(window) == 0 {
		out.Empty = true
		out.Rows = []Row{{
			Cells:       []string{opts.EmptyMessage},
			Placeholder: true,
			Span:        len(columns),
		}}
	} else {
		out.Rows = make([]Row, len(window))
		for i, rec := range window {
			cells := make([]string, len(columns))
			for j, c := range columns {
				cells[j] = c.Cell(rec)
			}
			out.Rows[i] = Row{Cells: cells}
		}
	}

	if opts.Footer != nil {
		out.Footer = opts.Footer(records)
	}
	return out
}
