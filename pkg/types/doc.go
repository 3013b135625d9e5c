// Package types defines the Shop and Table interfaces, the shop entities
// (inventory items, employees, orders, report lines), and the standard
// errors shared by every backend and caller.
package types
