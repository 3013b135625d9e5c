// Package render writes a datatable.RenderedTable as aligned text, JSON or
// CSV for the CLI and the HTTP API.
package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/mesh-intelligence/teashop/pkg/datatable"
)

// Text writes t as a tabwriter table: upper-case headers, a dash separator,
// the rows, an optional footer, then the page control and record count.
// Trailing whitespace is trimmed from every line.
func Text(w io.Writer, t datatable.RenderedTable) error {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	widths := columnWidths(t)
	line := func(cells []string) {
		padded := make([]string, len(cells))
		for i, c := range cells {
			padded[i] = pad(c, widths, t.Aligns, i)
		}
		fmt.Fprintln(tw, strings.Join(padded, "\t"))
	}

	if t.Headers != nil {
		headers := make([]string, len(t.Headers))
		dashes := make([]string, len(t.Headers))
		for i, h := range t.Headers {
			headers[i] = strings.ToUpper(h)
			dashes[i] = strings.Repeat("-", utf8.RuneCountInString(h))
		}
		line(headers)
		line(dashes)
	}

	if t.Empty {
		tw.Flush()
		fmt.Fprintln(&sb, t.Rows[0].Cells[0])
	} else {
		for _, r := range t.Rows {
			line(r.Cells)
		}
	}

	if t.Footer != nil {
		dashes := make([]string, len(t.Footer))
		for i := range dashes {
			dashes[i] = strings.Repeat("-", widths[i])
		}
		line(dashes)
		line(t.Footer)
	}
	tw.Flush()

	for _, l := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		if _, err := fmt.Fprintln(w, strings.TrimRight(l, " ")); err != nil {
			return err
		}
	}

	if t.TotalPages > 0 {
		if _, err := fmt.Fprintf(w, "\nPage %d of %d  %s\n", t.Page.CurrentPage, t.TotalPages, Labels(t)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Total: %d %s\n", t.TotalRecords, plural(t.TotalRecords, "record"))
	return err
}

// Labels renders the page control: prev/next markers around the page
// labels, the current page in brackets. Disabled markers are blank.
func Labels(t datatable.RenderedTable) string {
	parts := make([]string, 0, len(t.Labels)+2)
	if t.Page.HasPrev() {
		parts = append(parts, "<")
	} else {
		parts = append(parts, " ")
	}
	for _, l := range t.Labels {
		if !l.Ellipsis && l.Page == t.Page.CurrentPage {
			parts = append(parts, "["+l.String()+"]")
			continue
		}
		parts = append(parts, l.String())
	}
	if t.Page.HasNext(t.TotalRecords) {
		parts = append(parts, ">")
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// columnWidths returns the widest cell per column across headers, rows and
// footer. The placeholder row is ignored.
func columnWidths(t datatable.RenderedTable) []int {
	widths := make([]int, t.ColumnCount())
	grow := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], utf8.RuneCountInString(c))
			}
		}
	}
	grow(t.Headers)
	if !t.Empty {
		for _, r := range t.Rows {
			grow(r.Cells)
		}
	}
	grow(t.Footer)
	return widths
}

// pad left-pads right-aligned cells to the column width; tabwriter handles
// the left-aligned ones.
func pad(cell string, widths []int, aligns []datatable.Align, i int) string {
	if i >= len(aligns) || aligns[i] != datatable.AlignRight {
		return cell
	}
	gap := widths[i] - utf8.RuneCountInString(cell)
	if gap <= 0 {
		return cell
	}
	return strings.Repeat(" ", gap) + cell
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// Document is the JSON shape of one rendered page.
type Document struct {
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
	TotalPages   int        `json:"total_pages"`
	TotalRecords int        `json:"total_records"`
	Labels       []string   `json:"labels"`
	Keys         []string   `json:"keys"`
	Headers      []string   `json:"headers,omitempty"`
	Rows         [][]string `json:"rows"`
	Footer       []string   `json:"footer,omitempty"`
	EmptyMessage string     `json:"empty_message,omitempty"`
}

// NewDocument flattens t for JSON output. An empty table has no rows and
// carries its placeholder text in EmptyMessage.
func NewDocument(t datatable.RenderedTable) Document {
	doc := Document{
		Page:         t.Page.CurrentPage,
		PageSize:     t.Page.PageSize,
		TotalPages:   t.TotalPages,
		TotalRecords: t.TotalRecords,
		Labels:       make([]string, len(t.Labels)),
		Keys:         t.Keys,
		Headers:      t.Headers,
		Rows:         [][]string{},
		Footer:       t.Footer,
	}
	for i, l := range t.Labels {
		doc.Labels[i] = l.String()
	}
	if t.Empty {
		doc.EmptyMessage = t.Rows[0].Cells[0]
		return doc
	}
	for _, r := range t.Rows {
		doc.Rows = append(doc.Rows, r.Cells)
	}
	return doc
}

// JSON writes t as an indented Document.
func JSON(w io.Writer, t datatable.RenderedTable) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(t))
}

// CSV writes the header (when shown), the rows and the footer as CSV.
// The placeholder row of an empty table is not written.
func CSV(w io.Writer, t datatable.RenderedTable) error {
	cw := csv.NewWriter(w)
	if t.Headers != nil {
		if err := cw.Write(t.Headers); err != nil {
			return fmt.Errorf("writing csv header: %w", err)
		}
	}
	if !t.Empty {
		for _, r := range t.Rows {
			if err := cw.Write(r.Cells); err != nil {
				return fmt.Errorf("writing csv row: %w", err)
			}
		}
	}
	if t.Footer != nil {
		if err := cw.Write(t.Footer); err != nil {
			return fmt.Errorf("writing csv footer: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
