package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextPage  key.Binding
	PrevPage  key.Binding
	FirstPage key.Binding
	LastPage  key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Search    key.Binding
	Done      key.Binding
	Reload    key.Binding
	Theme     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		FirstPage: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first")),
		LastPage:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Done:      key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "done")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevPage, k.NextPage, k.NextTab, k.Search, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevPage, k.NextPage, k.FirstPage, k.LastPage},
		{k.NextTab, k.PrevTab, k.Search, k.Done},
		{k.Reload, k.Theme, k.Quit},
	}
}
