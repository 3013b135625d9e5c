package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/teashop/internal/netstatus"
	"github.com/mesh-intelligence/teashop/internal/session"
	"github.com/mesh-intelligence/teashop/pkg/types"
)

// statusInterval is how often the connectivity check repeats.
const statusInterval = 30 * time.Second

// Options configures a BrowserModel.
type Options struct {
	Theme    Theme
	PageSize int
	// Checker checks the remote endpoint. Nil disables the indicator.
	Checker *netstatus.Checker
	Logger  *zap.Logger
}

// statusMsg carries a connectivity check result.
type statusMsg netstatus.Status

// BrowserModel is the root bubbletea model: a tab per screen the session
// may view, a search box and the page control.
type BrowserModel struct {
	shop    types.Shop
	session *session.Session
	screens []screen
	active  int

	search    textinput.Model
	searching bool

	theme  Theme
	styles Styles
	keys   keyMap
	help   help.Model

	checker *netstatus.Checker
	status  netstatus.Status
	err     error
	logger  *zap.Logger
}

// NewBrowser loads every screen visible to sess. Employees and reports
// only appear for managers.
func NewBrowser(shop types.Shop, sess *session.Session, opts Options) (BrowserModel, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Theme.Name == "" {
		opts.Theme = LightTheme()
	}
	logger := opts.Logger

	var visible []screen
	for _, s := range newScreens(opts.PageSize, func(page int) {
		logger.Debug("page changed", zap.Int("page", page))
	}) {
		if !sess.CanView(s.Table()) {
			continue
		}
		if err := s.Load(shop, ""); err != nil {
			return BrowserModel{}, err
		}
		visible = append(visible, s)
	}
	if len(visible) == 0 {
		return BrowserModel{}, types.ErrNotLoggedIn
	}

	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40

	return BrowserModel{
		shop:    shop,
		session: sess,
		screens: visible,
		search:  ti,
		theme:   opts.Theme,
		styles:  NewStyles(opts.Theme),
		keys:    defaultKeyMap(),
		help:    help.New(),
		checker: opts.Checker,
		logger:  logger,
	}, nil
}

// Init starts the connectivity check when a checker is configured.
func (m BrowserModel) Init() tea.Cmd {
	if m.checker == nil {
		return nil
	}
	return m.checkStatus()
}

func (m BrowserModel) checkStatus() tea.Cmd {
	c := m.checker
	return func() tea.Msg {
		return statusMsg(c.Check(context.Background()))
	}
}

// Update handles key presses and check results.
func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.status = netstatus.Status(msg)
		c := m.checker
		if c == nil {
			return m, nil
		}
		return m, tea.Tick(statusInterval, func(time.Time) tea.Msg {
			return statusMsg(c.Check(context.Background()))
		})

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m BrowserModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Done) {
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.current().Search() {
		m.err = m.current().Load(m.shop, m.search.Value())
	}
	return m, cmd
}

func (m BrowserModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pager := m.current().Pager()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPage):
		pager.Next()
	case key.Matches(msg, m.keys.PrevPage):
		pager.Prev()
	case key.Matches(msg, m.keys.FirstPage):
		pager.First()
	case key.Matches(msg, m.keys.LastPage):
		pager.Last()
	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
	case key.Matches(msg, m.keys.Reload):
		m.err = m.current().Reload(m.shop)
	case key.Matches(msg, m.keys.Theme):
		m.theme = m.theme.Toggle()
		m.styles = NewStyles(m.theme)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	}
	return m, nil
}

func (m *BrowserModel) switchTab(delta int) {
	n := len(m.screens)
	m.active = ((m.active+delta)%n + n) % n
	m.search.SetValue(m.current().Search())
	m.err = nil
}

func (m BrowserModel) current() screen {
	return m.screens[m.active]
}

// View renders the header, tabs, search box, table and help line.
func (m BrowserModel) View() string {
	s := m.styles
	var sb strings.Builder

	title := s.Title.Render("Bubble Tea Shop")
	if m.session != nil {
		title += "  " + s.Subtitle.Render(m.session.Name+" ("+m.session.Role+")")
	}
	sb.WriteString(title + "\n")

	if m.status == netstatus.Offline {
		sb.WriteString(s.Banner.Render("You are offline. Showing local data.") + "\n")
	}

	tabs := make([]string, len(m.screens))
	for i, sc := range m.screens {
		if i == m.active {
			tabs[i] = s.ActiveTab.Render(sc.Title())
		} else {
			tabs[i] = s.Tab.Render(sc.Title())
		}
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n\n")

	if m.searching || m.search.Value() != "" {
		sb.WriteString(m.search.View() + "\n\n")
	}

	sb.WriteString(Table(s, m.current().Render()) + "\n")

	if m.err != nil {
		sb.WriteString("\n" + s.Error.Render("Error: "+m.err.Error()) + "\n")
	}

	sb.WriteString("\n" + m.help.View(m.keys))
	return sb.String()
}

// Run starts the browser on the terminal and blocks until the user quits.
func Run(m BrowserModel) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
