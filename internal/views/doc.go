// Package views holds the screen definitions shared by the CLI, the
// terminal browser and the HTTP API: per-screen filters, column sets and
// the Listing state that owns a datatable.Pager.
//
// The data table never resets its own page. Whoever changes the filtered
// collection must reset the page; Listing.Apply does that whenever the
// filter key changes.
package views
