package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/teashop/internal/dashboard"
	"github.com/mesh-intelligence/teashop/internal/render"
	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

const (
	managerEmail  = "john.doe@bubbletea.com"
	staffEmail    = "jane.smith@bubbletea.com"
	inactiveEmail = "mike.johnson@bubbletea.com"
)

// testEnv runs teashop commands in process against temporary config and
// data directories.
type testEnv struct {
	t         *testing.T
	configDir string
	dataDir   string
}

type runResult struct {
	Stdout string
	Stderr string
	Err    error
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	return &testEnv{
		t:         t,
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// seededEnv returns an initialized shop with someone logged in.
func seededEnv(t *testing.T, email string) *testEnv {
	t.Helper()
	env := newTestEnv(t)
	env.mustRun("init")
	env.mustRun("login", email)
	return env
}

func (e *testEnv) run(args ...string) runResult {
	e.t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := cmd.Execute()
	return runResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

func (e *testEnv) mustRun(args ...string) string {
	e.t.Helper()
	res := e.run(args...)
	require.NoError(e.t, res.Err, "teashop %s\nstderr: %s", strings.Join(args, " "), res.Stderr)
	return res.Stdout
}

func (e *testEnv) document(args ...string) render.Document {
	e.t.Helper()
	var doc render.Document
	out := e.mustRun(append(args, "--json")...)
	require.NoError(e.t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

func TestVersion(t *testing.T) {
	out := newTestEnv(t).mustRun("version")
	assert.Contains(t, out, "teashop v"+Version)
}

func TestInitSeedsSampleData(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("init")
	assert.Contains(t, out, "Shop initialized at "+env.dataDir)
	assert.Contains(t, out, "seeded 8 inventory")
	assert.Contains(t, out, "seeded 5 employees")

	for _, name := range types.StandardTableNames {
		_, err := os.Stat(filepath.Join(env.dataDir, name+".jsonl"))
		assert.NoError(t, err, name)
	}
	_, err := os.Stat(filepath.Join(env.configDir, "config.yaml"))
	assert.NoError(t, err, "first run writes a default config")

	out = env.mustRun("init")
	assert.NotContains(t, out, "seeded", "second init leaves existing records alone")
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	tests := []struct {
		name    string
		email   string
		wantErr error
		want    string
	}{
		{name: "manager", email: managerEmail, want: "Logged in as John Doe (Manager)"},
		{name: "staff", email: staffEmail, want: "Logged in as Jane Smith (Staff)"},
		{name: "inactive", email: inactiveEmail, wantErr: session.ErrInactive},
		{name: "unknown", email: "nobody@bubbletea.com", wantErr: types.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.run("login", tt.email)
			if tt.wantErr != nil {
				assert.ErrorIs(t, res.Err, tt.wantErr)
				assert.Equal(t, exitUserError, exitCode(res.Err))
				return
			}
			require.NoError(t, res.Err)
			assert.Contains(t, res.Stdout, tt.want)
		})
	}
}

func TestWhoamiAndLogout(t *testing.T) {
	env := seededEnv(t, managerEmail)

	out := env.mustRun("whoami")
	assert.Contains(t, out, "John Doe <"+managerEmail+">")
	assert.Contains(t, out, "Role: Manager")

	assert.Contains(t, env.mustRun("logout"), "Logged out")
	env.mustRun("logout")

	res := env.run("whoami")
	assert.ErrorIs(t, res.Err, types.ErrNotLoggedIn)
	assert.Equal(t, exitUserError, exitCode(res.Err))
}

func TestListingsRequireLogin(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	for _, args := range [][]string{
		{"inventory", "list"},
		{"order", "list"},
		{"employee", "list"},
		{"report", "list"},
	} {
		res := env.run(args...)
		assert.ErrorIs(t, res.Err, types.ErrNotLoggedIn, strings.Join(args, " "))
	}
}

func TestStaffCannotSeeManagerScreens(t *testing.T) {
	env := seededEnv(t, staffEmail)

	env.mustRun("inventory", "list")
	env.mustRun("order", "list")

	for _, args := range [][]string{
		{"employee", "list"},
		{"report", "list"},
		{"inventory", "add", "--name", "Oolong Tea", "--category", "tea"},
	} {
		res := env.run(args...)
		assert.ErrorIs(t, res.Err, types.ErrForbidden, strings.Join(args, " "))
	}
}

func TestInventoryListPaging(t *testing.T) {
	env := seededEnv(t, managerEmail)

	out := env.mustRun("inventory", "list", "--page-size", "3", "--page", "2")
	assert.Contains(t, out, "Page 2 of 3")
	assert.Contains(t, out, "Total: 8 records")

	doc := env.document("inventory", "list", "--page-size", "3", "--page", "9")
	assert.Equal(t, 3, doc.Page, "out of range page is clamped")
	assert.Equal(t, 3, doc.TotalPages)
	assert.Equal(t, 8, doc.TotalRecords)
	assert.Len(t, doc.Rows, 2)

	doc = env.document("inventory", "list", "--page-size", "3")
	assert.Equal(t, "Black Tea", doc.Rows[0][1])
	assert.Equal(t, []string{"1", "2", "3"}, doc.Labels)

	doc = env.document("inventory", "list", "--page-size", "9223372036854775807")
	assert.Equal(t, 1, doc.TotalPages)
	assert.Len(t, doc.Rows, 8)
	assert.Equal(t, []string{"1"}, doc.Labels)

	res := env.run("inventory", "list", "--page-size", "-1")
	assert.ErrorIs(t, res.Err, types.ErrInvalidFilter)
}

func TestInventoryListFilters(t *testing.T) {
	env := seededEnv(t, managerEmail)

	doc := env.document("inventory", "list", "--category", "tea")
	for _, row := range doc.Rows {
		assert.Equal(t, "Tea", row[2])
	}
	assert.NotEmpty(t, doc.Rows)

	doc = env.document("inventory", "list", "--search", "no such thing")
	assert.Zero(t, doc.TotalRecords)
	assert.Empty(t, doc.Rows)
	assert.NotEmpty(t, doc.EmptyMessage)
}

func TestInventoryAdjust(t *testing.T) {
	env := seededEnv(t, staffEmail)

	doc := env.document("inventory", "list", "--search", "Whole Milk")
	require.Len(t, doc.Rows, 1)
	id := doc.Rows[0][0]

	out := env.mustRun("inventory", "adjust", id, "12")
	assert.Contains(t, out, "Whole Milk: 20 L")

	res := env.run("inventory", "adjust", id, "--", "-25")
	assert.ErrorIs(t, res.Err, types.ErrInsufficientStock)

	res = env.run("inventory", "adjust", id, "lots")
	assert.ErrorIs(t, res.Err, types.ErrInvalidQuantity)

	res = env.run("inventory", "adjust", "zzzzzzzz", "1")
	assert.ErrorIs(t, res.Err, types.ErrNotFound)
}

func TestInventoryRestock(t *testing.T) {
	env := seededEnv(t, staffEmail)

	doc := env.document("inventory", "list", "--search", "Whole Milk")
	require.Len(t, doc.Rows, 1)
	id := doc.Rows[0][0]

	out := env.mustRun("inventory", "restock", id, "12", "--supplier", "Valley Farms", "--urgency", "high", "--note", "weekend rush")
	assert.Contains(t, out, "Whole Milk: 20 L from Valley Farms")

	var item types.InventoryItem
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("inventory", "restock", id, "1", "--json")), &item))
	assert.Equal(t, 21.0, item.CurrentStock)
	assert.Equal(t, "Valley Farms", item.Supplier, "supplier kept when not given")

	res := env.run("inventory", "restock", id, "0")
	assert.ErrorIs(t, res.Err, types.ErrInvalidQuantity)

	res = env.run("inventory", "restock", id, "5", "--urgency", "yesterday")
	assert.ErrorIs(t, res.Err, types.ErrInvalidData)

	env.mustRun("logout")
	res = env.run("inventory", "restock", id, "5")
	assert.ErrorIs(t, res.Err, types.ErrNotLoggedIn)
}

func TestInventoryAddAndDelete(t *testing.T) {
	env := seededEnv(t, managerEmail)

	env.mustRun("inventory", "add", "--name", "Oolong Tea", "--category", "tea",
		"--stock", "10", "--threshold", "3", "--unit", "kg", "--supplier", "Premium Tea Suppliers")
	doc := env.document("inventory", "list", "--search", "Oolong")
	require.Len(t, doc.Rows, 1)

	assert.Contains(t, env.mustRun("inventory", "delete", doc.Rows[0][0]), "Deleted")
	doc = env.document("inventory", "list", "--search", "Oolong")
	assert.Zero(t, doc.TotalRecords)
}

func TestOrderLifecycle(t *testing.T) {
	env := seededEnv(t, staffEmail)

	out := env.mustRun("order", "create", "--json", "--customer", "Amy Lin",
		"--drink", "Taro Milk Tea:5.00:2", "--drink", "Matcha Latte:6.00", "--size", "large")
	var order types.Order
	require.NoError(t, json.Unmarshal([]byte(out), &order))
	assert.Equal(t, types.OrderPending, order.Status)
	assert.Len(t, order.Lines, 2)
	assert.Equal(t, "large", order.Lines[1].Size)

	out = env.mustRun("order", "status", order.OrderID, types.OrderProcessing)
	assert.Contains(t, out, "pending -> processing")

	env.mustRun("order", "status", order.OrderID[len(order.OrderID)-8:], types.OrderCompleted)

	res := env.run("order", "status", order.OrderID, types.OrderCancelled)
	assert.ErrorIs(t, res.Err, types.ErrInvalidTransition)

	doc := env.document("order", "list", "--search", "Amy")
	require.Len(t, doc.Rows, 1)
	assert.Equal(t, "Completed", doc.Rows[0][3])
}

func TestOrderCreateRejectsBadDrink(t *testing.T) {
	env := seededEnv(t, staffEmail)

	res := env.run("order", "create", "--customer", "Amy", "--drink", "Taro Milk Tea")
	require.Error(t, res.Err)
	assert.Equal(t, exitUserError, exitCode(res.Err))
}

func TestEmployeeStatus(t *testing.T) {
	env := seededEnv(t, managerEmail)

	doc := env.document("employee", "list", "--search", staffEmail)
	require.Len(t, doc.Rows, 1)
	jane := doc.Rows[0][0]

	assert.Contains(t, env.mustRun("employee", "deactivate", jane), "Jane Smith is now inactive")
	res := env.run("login", staffEmail)
	assert.ErrorIs(t, res.Err, session.ErrInactive)

	env.mustRun("employee", "activate", jane)

	doc = env.document("employee", "list", "--search", managerEmail)
	require.Len(t, doc.Rows, 1)
	res = env.run("employee", "deactivate", doc.Rows[0][0])
	assert.ErrorIs(t, res.Err, types.ErrForbidden)
}

func TestReportList(t *testing.T) {
	env := seededEnv(t, managerEmail)

	doc := env.document("report", "list", "--page-size", "2")
	assert.Equal(t, 5, doc.TotalRecords)
	assert.Len(t, doc.Rows, 2)
	require.NotEmpty(t, doc.Footer)
	assert.Equal(t, "Total", doc.Footer[0])

	out := env.mustRun("report", "list", "--csv", "--page-size", "2")
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 7, "header, every line and the footer")

	doc = env.document("report", "list", "--category", "Milk Tea")
	assert.Equal(t, 2, doc.TotalRecords)

	res := env.run("report", "list", "--from", "June 1")
	assert.ErrorIs(t, res.Err, types.ErrInvalidFilter)
}

func TestConfigOutput(t *testing.T) {
	env := newTestEnv(t)

	out := env.mustRun("config")
	assert.Contains(t, out, "page_size")
	assert.Contains(t, out, env.dataDir)

	var settings map[string]any
	require.NoError(t, json.Unmarshal([]byte(env.mustRun("config", "--json")), &settings))
	assert.Equal(t, "sqlite", settings["backend"])
	assert.Equal(t, env.configDir, settings["config_dir"])
}

func TestStatus(t *testing.T) {
	env := seededEnv(t, staffEmail)

	out := env.mustRun("status")
	assert.Contains(t, out, "Jane Smith (Staff)")
	assert.Contains(t, out, "not configured")

	env.mustRun("logout")
	assert.Contains(t, env.mustRun("status"), "not logged in")
}

func TestDashboard(t *testing.T) {
	t.Run("manager", func(t *testing.T) {
		env := seededEnv(t, managerEmail)

		out := env.mustRun("dashboard", "--date", "2023-06-17")
		assert.Regexp(t, `Sales today:\s+\$35\.58`, out)
		assert.Regexp(t, `Orders today:\s+4\n`, out)
		assert.Regexp(t, `Customers today:\s+4\n`, out)
		assert.Regexp(t, `Inventory alerts:\s+3\n`, out)
		assert.Regexp(t, `Monthly revenue:\s+\$821\.50`, out)
		assert.Contains(t, out, "Brown Sugar Boba (45)")

		var sum dashboard.Summary
		raw := env.mustRun("dashboard", "--date", "2023-06-01", "--json")
		require.NoError(t, json.Unmarshal([]byte(raw), &sum), raw)
		require.NotNil(t, sum.Manager)
		daily := sum.Manager.Periods[0]
		assert.Equal(t, "daily", daily.Name)
		assert.InDelta(t, 821.5, daily.Revenue, 0.001)
		assert.InDelta(t, 376, daily.Profit, 0.001)
		assert.InDelta(t, 45.77, daily.Margin, 0.001)
		assert.Zero(t, sum.Daily.Orders)
	})

	t.Run("staff sees only the day", func(t *testing.T) {
		env := seededEnv(t, staffEmail)

		out := env.mustRun("dashboard", "--date", "2023-06-17")
		assert.Contains(t, out, "Orders completed:")
		assert.NotContains(t, out, "Monthly")
		assert.NotContains(t, out, "Top sellers")
	})

	t.Run("bad date", func(t *testing.T) {
		env := seededEnv(t, staffEmail)
		res := env.run("dashboard", "--date", "17/06/2023")
		assert.ErrorIs(t, res.Err, types.ErrInvalidFilter)
	})

	t.Run("requires login", func(t *testing.T) {
		env := newTestEnv(t)
		env.mustRun("init")
		res := env.run("dashboard")
		assert.ErrorIs(t, res.Err, types.ErrNotLoggedIn)
	})
}

func TestServeRequiresLogin(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun("init")

	res := env.run("serve")
	assert.ErrorIs(t, res.Err, types.ErrNotLoggedIn)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSuccess, exitCode(nil))
	assert.Equal(t, exitUserError, exitCode(types.ErrForbidden))
	assert.Equal(t, exitSysError, exitCode(sysErr(errors.New("disk full"))))
	assert.Nil(t, sysErr(nil))
}
