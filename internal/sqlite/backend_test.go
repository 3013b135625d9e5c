// Tests for the SQLite backend lifecycle.

package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

func attachTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	t.Cleanup(func() { b.Detach() })
	return b, dir
}

func mustTable(t *testing.T, b *Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	require.NoError(t, err)
	return tbl
}

func TestBackend_Attach(t *testing.T) {
	b, dir := attachTemp(t)

	assert.FileExists(t, filepath.Join(dir, dbFileName))
	for _, name := range jsonlFiles {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir})
	assert.ErrorIs(t, err, types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{}), types.ErrBackendEmpty)
	assert.ErrorIs(t, b.Attach(types.Config{Backend: "postgres"}), types.ErrBackendUnknown)
}

func TestBackend_Detach(t *testing.T) {
	b, _ := attachTemp(t)
	tbl := mustTable(t, b, types.InventoryTable)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "Detach is idempotent")

	_, err := b.GetTable(types.InventoryTable)
	assert.ErrorIs(t, err, types.ErrShopDetached)

	_, err = tbl.Fetch(nil)
	assert.ErrorIs(t, err, types.ErrShopDetached)
	_, err = tbl.Set("", &types.InventoryItem{Name: "x", Category: types.CategoryTea})
	assert.ErrorIs(t, err, types.ErrShopDetached)
}

func TestBackend_GetTable(t *testing.T) {
	b, _ := attachTemp(t)

	for _, name := range types.StandardTableNames {
		_, err := b.GetTable(name)
		assert.NoError(t, err, name)
	}
	_, err := b.GetTable("menu")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackend_ReattachReloadsJSONL(t *testing.T) {
	dir := t.TempDir()
	cfg := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(cfg))
	id, err := mustTable(t, b, types.InventoryTable).Set("", &types.InventoryItem{
		Name: "Oolong", Category: types.CategoryTea, CurrentStock: 4, Threshold: 2, Unit: "kg",
	})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(cfg))
	defer b2.Detach()

	got, err := mustTable(t, b2, types.InventoryTable).Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Oolong", got.(*types.InventoryItem).Name)
}

func TestBackend_LoadSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	content := `{"item_id":"a","name":"Black Tea","category":"tea","current_stock":3,"threshold":1,"unit":"kg","supplier":"S","updated_at":"2023-06-15T00:00:00Z"}
not json
{"name":"no id"}
{"item_id":"b","name":"Green Tea","category":"tea","current_stock":1,"threshold":1,"unit":"kg","supplier":"S","updated_at":"2023-06-15T00:00:00Z","future_field":true}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, inventoryFile), []byte(content), 0o644))

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	items, err := mustTable(t, b, types.InventoryTable).Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
