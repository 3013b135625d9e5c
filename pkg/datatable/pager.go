package datatable

// Pager holds the page state of one mounted table instance and reports
// navigation through OnPageChange. It is not safe for concurrent use; a
// pager belongs to a single view on a single event loop.
type Pager struct {
	state PageState
	count int

	// OnPageChange is called with the clamped page after every request
	// that actually moves the page. It may be nil.
	OnPageChange func(page int)
}

// NewPager returns a pager positioned on page 1.
func NewPager(pageSize int, onPageChange func(page int)) *Pager {
	return &Pager{
		state:        NewPageState(pageSize),
		OnPageChange: onPageChange,
	}
}

// State returns the current page state.
func (p *Pager) State() PageState {
	return p.state
}

// Count returns the record count the pager was last told about.
func (p *Pager) Count() int {
	return p.count
}

// TotalPages returns the page count for the current record count.
func (p *Pager) TotalPages() int {
	return p.state.TotalPages(p.count)
}

// SetCount records the size of the collection being paged. It does not
// move the current page.
func (p *Pager) SetCount(n int) {
	p.count = n
}

// SetPageSize changes the page size and returns to page 1.
func (p *Pager) SetPageSize(size int) {
	p.state = NewPageState(size)
}

// Reset returns to page 1 without firing OnPageChange. Call it whenever
// the filtered collection changes identity.
func (p *Pager) Reset() {
	p.state.CurrentPage = 1
}

// Request moves to the clamped page and fires OnPageChange. It returns
// false, without firing, when the page does not change.
func (p *Pager) Request(page int) bool {
	next, changed := ChangePage(p.state, page, p.count)
	if !changed {
		return false
	}
	p.state = next
	if p.OnPageChange != nil {
		p.OnPageChange(next.CurrentPage)
	}
	return true
}

// Next moves one page forward.
func (p *Pager) Next() bool { return p.Request(p.state.CurrentPage + 1) }

// Prev moves one page back.
func (p *Pager) Prev() bool { return p.Request(p.state.CurrentPage - 1) }

// First moves to page 1.
func (p *Pager) First() bool { return p.Request(1) }

// Last moves to the final page.
func (p *Pager) Last() bool { return p.Request(p.TotalPages()) }
