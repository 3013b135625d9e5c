package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/teashop/pkg/types"
)

func TestSeed_PopulatesEmptyTables(t *testing.T) {
	b, dir := attachTemp(t)

	result, err := Seed(b)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{
		types.InventoryTable: 8,
		types.EmployeesTable: 5,
		types.OrdersTable:    5,
		types.ReportsTable:   5,
	}, result)

	low, err := mustTable(t, b, types.InventoryTable).Fetch(types.Filter{"status": types.StockLow})
	require.NoError(t, err)
	assert.Len(t, low, 2, "Whole Milk and Almond Milk are under threshold")

	managers, err := mustTable(t, b, types.EmployeesTable).Fetch(types.Filter{"role": types.RoleManager})
	require.NoError(t, err)
	require.Len(t, managers, 1)
	assert.Equal(t, "john.doe@bubbletea.com", managers[0].(*types.Employee).Email)

	data, err := os.ReadFile(filepath.Join(dir, reportsFile))
	require.NoError(t, err)
	assert.Equal(t, 5, strings.Count(string(data), "\n"))
}

func TestSeed_Idempotent(t *testing.T) {
	b, _ := attachTemp(t)

	_, err := Seed(b)
	require.NoError(t, err)
	result, err := Seed(b)
	require.NoError(t, err)
	for table, n := range result {
		assert.Zero(t, n, table)
	}

	items, err := mustTable(t, b, types.InventoryTable).Fetch(nil)
	require.NoError(t, err)
	assert.Len(t, items, 8)
}

func TestSeed_SkipsNonEmptyTable(t *testing.T) {
	b, _ := attachTemp(t)
	_, err := mustTable(t, b, types.ReportsTable).Set("", &types.ReportLine{Product: "Only"})
	require.NoError(t, err)

	result, err := Seed(b)
	require.NoError(t, err)
	assert.Zero(t, result[types.ReportsTable])
	assert.Equal(t, 8, result[types.InventoryTable])
}

func TestSeed_Detached(t *testing.T) {
	_, err := Seed(NewBackend())
	assert.ErrorIs(t, err, types.ErrShopDetached)
}
