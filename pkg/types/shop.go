package types

import "errors"

// Shop defines backend-agnostic storage access for the shop's tables.
// Callers attach to a backend, access tables by name, and detach when done.
type Shop interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Shop to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrShopDetached.
	Detach() error
}

// Shop lifecycle errors.
var (
	ErrShopDetached    = errors.New("shop is detached")
	ErrAlreadyAttached = errors.New("shop is already attached")
	ErrTableNotFound   = errors.New("table not found")
)
