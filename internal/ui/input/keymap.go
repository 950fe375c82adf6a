package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap describes the bindings shown by the help view. Dispatching is done
// by the mode handlers.
type KeyMap struct {
	Home     key.Binding
	Catalog  key.Binding
	Search   key.Binding
	Submit   key.Binding
	Cancel   key.Binding
	Up       key.Binding
	Down     key.Binding
	Page     key.Binding
	Ends     key.Binding
	Retry    key.Binding
	Pager    key.Binding
	Help     key.Binding
	HelpPage key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the storefront key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Catalog:  key.NewBinding(key.WithKeys("2", "tab"), key.WithHelp("2/tab", "catalog")),
		Search:   key.NewBinding(key.WithKeys("/", "s", "enter"), key.WithHelp("/", "search")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run search")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave search bar")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Page:     key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		Ends:     key.NewBinding(key.WithKeys("home", "end", "g", "G"), key.WithHelp("gg/G", "top/bottom")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "repeat search")),
		Pager:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "open results in pager")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		HelpPage: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "help in pager")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// SearchKeyMap is the help shown while the search bar has focus
type SearchKeyMap struct {
	KeyMap
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Up, k.Down, k.Catalog, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Catalog, k.Search},
		{k.Up, k.Down, k.Page, k.Ends},
		{k.Retry, k.Pager},
		{k.Help, k.HelpPage, k.Quit},
	}
}

func (k SearchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel, k.Up, k.Down}
}

func (k SearchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Cancel}, {k.Up, k.Down, k.Page}}
}
