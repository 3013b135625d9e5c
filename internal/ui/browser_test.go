package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/teashop/internal/netstatus"
	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/internal/sqlite"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

func newTestBrowser(t *testing.T, role string) (BrowserModel, types.Shop) {
	t.Helper()
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	_, err := sqlite.Seed(b)
	require.NoError(t, err)

	sess := &session.Session{Name: "Test User", Email: "test@bubbletea.com", Role: role}
	m, err := NewBrowser(b, sess, Options{PageSize: 3})
	require.NoError(t, err)
	return m, b
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m BrowserModel, msgs ...tea.Msg) BrowserModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(BrowserModel)
	}
	return m
}

func inventoryRecords(m BrowserModel) []*types.InventoryItem {
	return m.current().(*listingScreen[*types.InventoryItem]).listing.Records()
}

func TestBrowserTabsByRole(t *testing.T) {
	manager, _ := newTestBrowser(t, types.RoleManager)
	staff, _ := newTestBrowser(t, types.RoleStaff)

	titles := func(m BrowserModel) []string {
		out := make([]string, len(m.screens))
		for i, s := range m.screens {
			out[i] = s.Title()
		}
		return out
	}
	assert.Equal(t, []string{"Inventory", "Orders", "Employees", "Reports"}, titles(manager))
	assert.Equal(t, []string{"Inventory", "Orders"}, titles(staff))
}

func TestBrowserRequiresSession(t *testing.T) {
	b := sqlite.NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })

	_, err := NewBrowser(b, nil, Options{})
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
}

func TestBrowserPaging(t *testing.T) {
	m, _ := newTestBrowser(t, types.RoleStaff)
	page := func() int { return m.current().Pager().State().CurrentPage }

	assert.Equal(t, 3, m.current().Pager().TotalPages())
	assert.Equal(t, 1, page())

	m = press(m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, page())
	m = press(m, runes("l"), runes("l"))
	assert.Equal(t, 3, page(), "next on the last page is a no-op")
	m = press(m, tea.KeyMsg{Type: tea.KeyHome})
	assert.Equal(t, 1, page())
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, page(), "prev on the first page is a no-op")
	m = press(m, runes("G"))
	assert.Equal(t, 3, page())

	assert.Contains(t, m.View(), "Showing 7-8 of 8")
}

func TestBrowserSearchResetsPage(t *testing.T) {
	m, _ := newTestBrowser(t, types.RoleStaff)

	m = press(m, tea.KeyMsg{Type: tea.KeyRight}, runes("/"))
	require.True(t, m.searching)
	m = press(m, runes("m"), runes("i"), runes("l"), runes("k"))

	assert.Equal(t, "milk", m.current().Search())
	assert.Equal(t, 1, m.current().Pager().State().CurrentPage)
	assert.Len(t, inventoryRecords(m), 2)

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	view := m.View()
	assert.Contains(t, view, "Almond Milk")
	assert.Contains(t, view, "Whole Milk")
	assert.NotContains(t, view, "Black Tea")

	// q types into the search box while searching and quits otherwise.
	m = press(m, runes("/"), runes("zq"))
	assert.Equal(t, "milkzq", m.current().Search())
	assert.Contains(t, m.View(), "No inventory items found.")
}

func TestBrowserTabKeepsSearchPerScreen(t *testing.T) {
	m, _ := newTestBrowser(t, types.RoleManager)

	m = press(m, runes("/"), runes("tea"), tea.KeyMsg{Type: tea.KeyEnter})
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Orders", m.current().Title())
	assert.Equal(t, "", m.search.Value())

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab}, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, "Reports", m.current().Title(), "shift+tab wraps around")

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, "Inventory", m.current().Title())
	assert.Equal(t, "tea", m.search.Value())
}

func TestBrowserReloadClampsPage(t *testing.T) {
	m, shop := newTestBrowser(t, types.RoleStaff)
	m = press(m, runes("G"))
	require.Equal(t, 3, m.current().Pager().State().CurrentPage)

	tbl, err := shop.GetTable(types.InventoryTable)
	require.NoError(t, err)
	for _, item := range inventoryRecords(m)[6:] {
		require.NoError(t, tbl.Delete(item.ItemID))
	}

	m = press(m, runes("r"))
	assert.NoError(t, m.err)
	assert.Equal(t, 2, m.current().Pager().State().CurrentPage)
	assert.Equal(t, 2, m.current().Pager().TotalPages())
}

func TestBrowserThemeToggle(t *testing.T) {
	m, _ := newTestBrowser(t, types.RoleStaff)
	assert.False(t, m.theme.IsDark)

	m = press(m, runes("t"))
	assert.True(t, m.theme.IsDark)
	assert.True(t, m.styles.Theme.IsDark)

	m = press(m, runes("t"))
	assert.False(t, m.theme.IsDark)
}

func TestBrowserOfflineBanner(t *testing.T) {
	m, _ := newTestBrowser(t, types.RoleStaff)
	assert.NotContains(t, m.View(), "offline")

	m = press(m, statusMsg(netstatus.Offline))
	assert.Contains(t, m.View(), "You are offline")

	m = press(m, statusMsg(netstatus.Online))
	assert.NotContains(t, m.View(), "offline")
}

func TestBrowserQuit(t *testing.T) {
	m, _ := newTestBrowser(t, types.RoleStaff)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestThemeByName(t *testing.T) {
	assert.True(t, ThemeByName("dark").IsDark)
	assert.True(t, ThemeByName(" Dark ").IsDark)
	assert.False(t, ThemeByName("light").IsDark)
	assert.False(t, ThemeByName("solarized").IsDark)
	assert.Equal(t, ThemeDark, LightTheme().Toggle().Name)
}
