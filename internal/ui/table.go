package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mesh-intelligence/teashop/pkg/datatable"
)

// statusKey is the column whose cells are colored as badges.
const statusKey = "status"

// Table renders t as a styled grid followed by the page control. Column
// widths fit the widest cell; the placeholder row of an empty page spans
// the full table width.
func Table(s Styles, t datatable.RenderedTable) string {
	widths := columnWidths(t)
	sep := s.Divider.Render("│")
	total := len(widths) - 1
	for _, w := range widths {
		total += w
	}

	var sb strings.Builder
	line := func(cells []string, style func(i int, cell string) lipgloss.Style) {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			st := style(i, cell).Width(widths[i])
			if i < len(t.Aligns) && t.Aligns[i] == datatable.AlignRight {
				st = st.Align(lipgloss.Right)
			}
			parts[i] = st.Render(cell)
		}
		sb.WriteString(strings.Join(parts, sep))
		sb.WriteString("\n")
	}
	divider := func() {
		sb.WriteString(s.Divider.Render(strings.Repeat("─", max(total, 0))))
		sb.WriteString("\n")
	}

	if t.Headers != nil {
		line(t.Headers, func(int, string) lipgloss.Style { return s.Header })
		divider()
	}

	if t.Empty {
		msg := t.Rows[0].Cells[0]
		sb.WriteString(s.Muted.Width(max(total, lipgloss.Width(msg))).Align(lipgloss.Center).Render(msg))
		sb.WriteString("\n")
	} else {
		for _, r := range t.Rows {
			line(r.Cells, func(i int, cell string) lipgloss.Style {
				if i < len(t.Keys) && t.Keys[i] == statusKey {
					return s.badge(cell).Padding(0, 1)
				}
				return s.Cell
			})
		}
	}

	if t.Footer != nil {
		divider()
		line(t.Footer, func(int, string) lipgloss.Style { return s.Footer })
	}

	sb.WriteString("\n")
	sb.WriteString(PageControl(s, t))
	return sb.String()
}

// PageControl renders "Showing a-b of n" and the page labels with the
// current page highlighted.
func PageControl(s Styles, t datatable.RenderedTable) string {
	if t.TotalRecords == 0 {
		return s.Muted.Render("Showing 0 of 0")
	}
	parts := make([]string, 0, len(t.Labels)+2)
	if t.Page.HasPrev() {
		parts = append(parts, "<")
	}
	for _, l := range t.Labels {
		if !l.Ellipsis && l.Page == t.Page.CurrentPage {
			parts = append(parts, s.Current.Render("["+l.String()+"]"))
			continue
		}
		parts = append(parts, l.String())
	}
	if t.Page.HasNext(t.TotalRecords) {
		parts = append(parts, ">")
	}
	summary := s.Muted.Render(fmt.Sprintf("Showing %d-%d of %d", t.Start+1, t.End, t.TotalRecords))
	return summary + "   " + strings.Join(parts, " ")
}

// badge picks the color for a status cell.
func (s Styles) badge(text string) lipgloss.Style {
	switch text {
	case "In Stock", "Active", "Completed":
		return s.Success
	case "Low Stock", "Pending", "Processing":
		return s.Warning
	case "Out of Stock", "Inactive", "Cancelled":
		return s.Danger
	default:
		return s.Cell
	}
}

// columnWidths returns each column's widest cell plus cell padding.
func columnWidths(t datatable.RenderedTable) []int {
	widths := make([]int, t.ColumnCount())
	grow := func(cells []string) {
		for i, c := range cells {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(c))
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
	for i := range widths {
		widths[i] += 2
	}
	return widths
}
