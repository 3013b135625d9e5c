// Package sqlite implements the SQLite storage backend for the shop.
// SQLite is the query engine; one JSONL file per table in DataDir is the
// source of truth and is reloaded on every Attach.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

// dbFileName is the SQLite database created inside DataDir.
const dbFileName = "teashop.db"

// Compile-time interface check: Backend must implement Shop.
var _ types.Shop = (*Backend)(nil)

// Backend implements the Shop interface using SQLite as the query engine
// and JSONL files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	tables   map[string]types.Table
	logger   *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the logger used for backend lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]types.Table),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns a Table interface for the specified table name.
// Returns ErrTableNotFound if the table name is not recognized.
// Returns ErrShopDetached if the backend is not attached.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrShopDetached
	}

	table, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return table, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite schema,
// loads every JSONL file and creates the table accessors.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if config.DataDir == "" {
		config.DataDir = "."
	}
	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files; rebuild it every time.
	dbPath := filepath.Join(config.DataDir, dbFileName)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps writes serialized and the schema visible.
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return err
	}

	if err := initJSONLFiles(config.DataDir); err != nil {
		db.Close()
		return fmt.Errorf("initializing JSONL files: %w", err)
	}

	loaded, err := loadAllJSONL(db, config.DataDir)
	if err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.attached = true

	b.tables[types.InventoryTable] = &inventoryTable{backend: b}
	b.tables[types.EmployeesTable] = &employeesTable{backend: b}
	b.tables[types.OrdersTable] = &ordersTable{backend: b}
	b.tables[types.ReportsTable] = &reportsTable{backend: b}

	b.logger.Debug("shop attached",
		zap.String("data_dir", config.DataDir),
		zap.Int("records", loaded))
	return nil
}

// Detach releases all resources held by the backend.
// Closes the SQLite connection. After Detach, all operations return
// ErrShopDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return fmt.Errorf("closing database: %w", err)
		}
		b.db = nil
	}

	b.attached = false
	b.tables = make(map[string]types.Table)
	b.logger.Debug("shop detached", zap.String("data_dir", b.config.DataDir))
	return nil
}

// DataDir returns the directory the backend is attached to.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.config.DataDir
}

// readLock takes the read lock and reports ErrShopDetached when the backend
// is not attached. The caller must call b.mu.RUnlock on success.
func (b *Backend) readLock() error {
	b.mu.RLock()
	if !b.attached {
		b.mu.RUnlock()
		return types.ErrShopDetached
	}
	return nil
}

// writeLock takes the write lock and reports ErrShopDetached when the
// backend is not attached. The caller must call b.mu.Unlock on success.
func (b *Backend) writeLock() error {
	b.mu.Lock()
	if !b.attached {
		b.mu.Unlock()
		return types.ErrShopDetached
	}
	return nil
}
