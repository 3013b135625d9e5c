// Package datatable windows an in-memory record collection into pages and
// projects each record through an ordered set of typed columns.
//
// The package owns no record data. Callers filter their own collection,
// keep the page state for the mounted view, and pass both into Render on
// every pass. Render is a pure function of its inputs; navigation goes
// through ChangePage (or a Pager), which clamps requests into
// [1, TotalPages] instead of failing.
//
// Preconditions that are not recovered internally:
//
//   - columns must be non-empty
//   - PageState.PageSize must be positive
//
// When a filter changes the collection, the caller resets the page to 1
// (Pager.Reset). Render never corrects a page that is past the end of a
// shrunken collection; it renders the empty placeholder row instead.
package datatable
