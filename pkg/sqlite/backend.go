// Package sqlite provides the public API for the SQLite shop backend.
// It exposes the backend factory and sample-data seeding while keeping
// implementation details internal.
package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/teashop/internal/sqlite"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// Option configures a backend created by NewBackend.
type Option = sqlite.Option

// WithLogger sets the zap logger used for backend lifecycle events.
var WithLogger = sqlite.WithLogger

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	shop := sqlite.NewBackend()
//	err := shop.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".teashop-db",
//	})
//	defer shop.Detach()
func NewBackend(opts ...Option) types.Shop {
	return sqlite.NewBackend(opts...)
}

// Seed loads the built-in sample dataset into every empty table of an
// attached shop created by NewBackend. It returns the number of records
// inserted per table.
func Seed(shop types.Shop) (map[string]int, error) {
	b, ok := shop.(*sqlite.Backend)
	if !ok {
		return nil, fmt.Errorf("seeding %T: %w", shop, types.ErrBackendUnknown)
	}
	return sqlite.Seed(b)
}
