package views

import "github.com/mesh-intelligence/teashop/pkg/datatable"

// Listing is the view state around one data table: the filtered records,
// the key of the filter that produced them and the pager.
type Listing[T any] struct {
	columns []datatable.Column[T]
	opts    datatable.Options[T]
	pager   *datatable.Pager
	records []T
	key     string
}

// NewListing returns a listing on page 1. onPageChange may be nil.
func NewListing[T any](columns []datatable.Column[T], opts datatable.Options[T], pageSize int, onPageChange func(int)) *Listing[T] {
	if pageSize <= 0 {
		pageSize = datatable.DefaultPageSize
	}
	return &Listing[T]{
		columns: columns,
		opts:    opts,
		pager:   datatable.NewPager(pageSize, onPageChange),
		records: []T{},
	}
}

// Apply replaces the records with a freshly filtered collection. When key
// differs from the previous filter key the collection is a different one
// and the page resets to 1 without firing the page-change callback.
// Returns true when the page was reset.
func (l *Listing[T]) Apply(key string, filtered []T) bool {
	reset := key != l.key
	l.key = key
	l.records = filtered
	l.pager.SetCount(len(filtered))
	if reset {
		l.pager.Reset()
	}
	return reset
}

// Refresh replaces the records under the same filter, for example after a
// delete. The page is kept unless the collection shrank below it, in which
// case it is clamped to the new last page.
func (l *Listing[T]) Refresh(filtered []T) {
	l.records = filtered
	l.pager.SetCount(len(filtered))
	if last := l.pager.TotalPages(); l.pager.State().CurrentPage > last {
		l.pager.Request(last)
	}
}

// Key returns the current filter key.
func (l *Listing[T]) Key() string { return l.key }

// Records returns the filtered collection.
func (l *Listing[T]) Records() []T { return l.records }

// Pager returns the listing's pager.
func (l *Listing[T]) Pager() *datatable.Pager { return l.pager }

// Columns returns the column set.
func (l *Listing[T]) Columns() []datatable.Column[T] { return l.columns }

// Render renders the current page.
func (l *Listing[T]) Render() datatable.RenderedTable {
	return datatable.Render(l.records, l.columns, l.pager.State(), l.opts)
}

// RenderPage applies filtered under key, moves to the requested page
// (clamped) and renders it. It is the one-shot path used by the CLI and
// the HTTP API.
func (l *Listing[T]) RenderPage(key string, filtered []T, page int) datatable.RenderedTable {
	l.Apply(key, filtered)
	l.pager.Request(page)
	return l.Render()
}
