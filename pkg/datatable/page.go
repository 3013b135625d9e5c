package datatable

import "strconv"

// DefaultPageSize is the page size used by DefaultOptions callers.
const DefaultPageSize = 10

// PageState is the pagination state of one mounted table.
type PageState struct {
	CurrentPage int `json:"current_page"` // 1-based.
	PageSize    int `json:"page_size"`    // Must be positive.
}

// NewPageState returns the state of a freshly mounted table: page 1.
func NewPageState(pageSize int) PageState {
	return PageState{CurrentPage: 1, PageSize: pageSize}
}

// TotalPages returns ceil(n / PageSize) without overflowing for any page
// size. The result is undefined for a non-positive PageSize.
func (p PageState) TotalPages(n int) int {
	pages := n / p.PageSize
	if n%p.PageSize != 0 {
		pages++
	}
	return pages
}

// Window returns the [start, end) slice bounds of the current page over a
// collection of n records. A page past the end yields an empty window at n.
func (p PageState) Window(n int) (start, end int) {
	before := max(p.CurrentPage-1, 0)
	if before > n/p.PageSize {
		return n, n
	}
	start = min(before*p.PageSize, n)
	if p.PageSize >= n-start {
		return start, n
	}
	return start, start + p.PageSize
}

// HasPrev reports whether a previous page exists.
func (p PageState) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a page follows the current one for n records.
func (p PageState) HasNext(n int) bool {
	return p.CurrentPage < p.TotalPages(n)
}

// ChangePage clamps requested into [1, TotalPages(n)] and returns the new
// state. The floor is 1 even when there are no pages. changed is false when
// the clamped page equals the current page, in which case state is
// returned untouched.
func ChangePage(state PageState, requested, n int) (next PageState, changed bool) {
	total := state.TotalPages(n)
	if requested > total {
		requested = total
	}
	if requested < 1 {
		requested = 1
	}
	if requested == state.CurrentPage {
		return state, false
	}
	state.CurrentPage = requested
	return state, true
}

// Ellipsis is the marker shown in place of skipped page numbers.
const Ellipsis = "…"

// PageLabel is one entry of the compact pagination control: a page number
// or an ellipsis.
type PageLabel struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// String renders the label as the page number or Ellipsis.
func (l PageLabel) String() string {
	if l.Ellipsis {
		return Ellipsis
	}
	return strconv.Itoa(l.Page)
}

const (
	maxVisiblePages = 4
	pageRange       = 2
)

// PageLabels returns the compact label sequence for the pagination control.
//
//	total <= 4:             1..total
//	current <= 3:           1 2 3 … total
//	current >= total-2:     1 … total-2 total-1 total
//	otherwise:              1 … current-1 current current+1 … total
func PageLabels(current, total int) []PageLabel {
	var labels []PageLabel
	pages := func(from, to int) {
		for i := from; i <= to; i++ {
			labels = append(labels, PageLabel{Page: i})
		}
	}
	gap := PageLabel{Ellipsis: true}

	switch {
	case total <= maxVisiblePages:
		pages(1, total)
	case current <= pageRange+1:
		pages(1, maxVisiblePages-1)
		labels = append(labels, gap, PageLabel{Page: total})
	case current >= total-pageRange:
		labels = append(labels, PageLabel{Page: 1}, gap)
		pages(total-(maxVisiblePages-2), total)
	default:
		labels = append(labels, PageLabel{Page: 1}, gap)
		pages(current-pageRange+1, current+pageRange-1)
		labels = append(labels, gap, PageLabel{Page: total})
	}
	return labels
}
